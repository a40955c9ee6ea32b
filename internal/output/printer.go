// Package output prints CLI status lines with semantic styling derived from
// the active chat theme, falling back to plain symbol prefixes.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/lipgloss"
)

// SemanticType is the meaning of a line of output.
type SemanticType string

// Semantic types understood by Printer.
const (
	SemanticPlain   SemanticType = "plain"
	SemanticInfo    SemanticType = "info"
	SemanticSuccess SemanticType = "success"
	SemanticWarning SemanticType = "warning"
	SemanticError   SemanticType = "error"
	SemanticMuted   SemanticType = "muted"
)

// TextStyle renders text. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// StyleProvider maps semantic types to styles.
type StyleProvider interface {
	GetStyle(semantic SemanticType) TextStyle
}

// Option configures a Printer.
type Option func(*Printer)

// WithWriter sets the destination. Default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) {
		if w != nil {
			p.writer = w
		}
	}
}

// WithStyles enables styled output from provider.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		p.styles = provider
	}
}

// PlainText forces symbol prefixes instead of styles.
func PlainText() Option {
	return func(p *Printer) {
		p.plain = true
	}
}

// Printer writes semantic lines. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	styles StyleProvider
	plain  bool
}

// NewPrinter creates a printer writing to os.Stdout unless configured otherwise.
func NewPrinter(opts ...Option) *Printer {
	p := &Printer{writer: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Println writes text unchanged followed by a newline.
func (p *Printer) Println(text string) {
	p.line(SemanticPlain, text)
}

// Printf formats and writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(SemanticPlain, fmt.Sprintf(format, args...))
}

// Info writes an informational line.
func (p *Printer) Info(text string) {
	p.line(SemanticInfo, text)
}

// Success writes a completion line.
func (p *Printer) Success(text string) {
	p.line(SemanticSuccess, text)
}

// Warning writes a warning line.
func (p *Printer) Warning(text string) {
	p.line(SemanticWarning, text)
}

// Error writes an error line.
func (p *Printer) Error(text string) {
	p.line(SemanticError, text)
}

// Muted writes a de-emphasised line.
func (p *Printer) Muted(text string) {
	p.line(SemanticMuted, text)
}

func (p *Printer) line(semantic SemanticType, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var rendered string
	if p.plain || p.styles == nil {
		rendered = plainPrefix(semantic) + text
	} else {
		rendered = p.styles.GetStyle(semantic).Render(text)
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, _ = io.WriteString(p.writer, rendered)
}

func plainPrefix(semantic SemanticType) string {
	switch semantic {
	case SemanticInfo:
		return "ℹ "
	case SemanticSuccess:
		return "✓ "
	case SemanticWarning:
		return "⚠ "
	case SemanticError:
		return "✗ "
	default:
		return ""
	}
}

// ThemeStyles derives semantic styles from a chat theme's colour tokens.
type ThemeStyles struct {
	styles map[SemanticType]lipgloss.Style
}

// Semantic colours that chat themes do not define.
const (
	warningColor = "#d97706"
	errorColor   = "#dc2626"
)

// NewThemeStyles builds styles for theme.
func NewThemeStyles(theme chattypes.Theme) *ThemeStyles {
	base := lipgloss.NewStyle()
	return &ThemeStyles{styles: map[SemanticType]lipgloss.Style{
		SemanticPlain:   base,
		SemanticInfo:    base.Foreground(lipgloss.Color(theme.Colors.Primary)),
		SemanticSuccess: base.Foreground(lipgloss.Color(theme.Colors.Accent)).Bold(true),
		SemanticWarning: base.Foreground(lipgloss.Color(warningColor)),
		SemanticError:   base.Foreground(lipgloss.Color(errorColor)).Bold(true),
		SemanticMuted:   base.Foreground(lipgloss.Color(theme.Colors.TextSecondary)),
	}}
}

// GetStyle returns the style for semantic, or an unstyled one for unknown types.
func (t *ThemeStyles) GetStyle(semantic SemanticType) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
