package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"arthurchat/internal/factory"
	"arthurchat/internal/logger"
	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ConversationStats is the part of the store the transcript header reads.
type ConversationStats interface {
	GetConversationData() chattypes.ConversationRecord
	GetConversationStats() chattypes.ConversationStats
}

// TranscriptService renders the conversation for a terminal using the active theme.
// Bot messages are treated as markdown.
type TranscriptService struct {
	mu          sync.Mutex
	initialized bool
	messages    *MessageService
	stats       ConversationStats
	themes      *ThemeManagerService
	wordWrap    int
	plain       bool
	renderers   map[string]*glamour.TermRenderer
}

// NewTranscriptService creates a transcript renderer with an 80 column word wrap.
func NewTranscriptService(messages *MessageService, stats ConversationStats, themeManager *ThemeManagerService) *TranscriptService {
	return &TranscriptService{
		messages:  messages,
		stats:     stats,
		themes:    themeManager,
		wordWrap:  80,
		renderers: make(map[string]*glamour.TermRenderer),
	}
}

// Name returns the service name "transcript" for registration.
func (t *TranscriptService) Name() string {
	return "transcript"
}

// Initialize marks the service ready.
func (t *TranscriptService) Initialize() error {
	t.mu.Lock()
	t.initialized = true
	t.mu.Unlock()
	logger.Debug("TranscriptService initialized", "word_wrap", t.wordWrap)
	return nil
}

// SetPlain switches ANSI output off. Plain output keeps layout but drops all escape codes.
func (t *TranscriptService) SetPlain(plain bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.plain = plain
}

// SetWordWrap changes the markdown wrap width.
func (t *TranscriptService) SetWordWrap(width int) error {
	if width <= 0 {
		return fmt.Errorf("word wrap width must be positive, got %d", width)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wordWrap = width
	t.renderers = make(map[string]*glamour.TermRenderer)
	return nil
}

// ErrTranscriptNotInitialized is returned by rendering calls before Initialize.
var ErrTranscriptNotInitialized = errors.New("transcript service not initialized")

// Render draws the stats header followed by every message in order.
// A message with an unknown sender fails the whole render.
func (t *TranscriptService) Render() (string, error) {
	var b strings.Builder
	b.WriteString(t.RenderStats())
	b.WriteString("\n")

	for _, msg := range t.messages.GetMessages() {
		block, err := t.RenderMessage(msg)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(block)
		b.WriteString("\n")
	}
	return t.finish(b.String()), nil
}

// RenderMessage resolves msg through the message factory and draws it with a
// sender/time label above its themed block.
func (t *TranscriptService) RenderMessage(msg chattypes.MessageData) (string, error) {
	t.mu.Lock()
	initialized := t.initialized
	t.mu.Unlock()
	if !initialized {
		return "", ErrTranscriptNotInitialized
	}

	resolved, err := t.messages.CreateMessageUsingFactory(msg)
	if err != nil {
		return "", err
	}
	props := resolved.Properties

	sender := chattypes.SenderUser
	content := props.Content
	if resolved.Kind == factory.BotMessageComponent {
		sender = chattypes.SenderBot
		if strings.TrimSpace(content) != "" {
			rendered, err := t.renderMarkdown(content)
			if err != nil {
				return "", err
			}
			content = rendered
		}
	}

	component := t.themes.CreateMessageComponent(content, sender)
	label := fmt.Sprintf("%s · %s", senderLabel(sender), formatClock(props.Timestamp))
	labelStyle := lipgloss.NewStyle().Faint(true)

	out := lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(label), component.Render())
	return t.finish(out), nil
}

// RenderStats returns "Messages: N | Duration: D" for the current conversation.
func (t *TranscriptService) RenderStats() string {
	stats := t.stats.GetConversationStats()
	record := t.stats.GetConversationData()
	line := fmt.Sprintf("Messages: %d | Duration: %s", stats.TotalMessages, FormatDuration(stats.Duration))
	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(record.SessionID),
		lipgloss.NewStyle().Faint(true).Render(line),
	)
	return t.finish(header)
}

func (t *TranscriptService) finish(s string) string {
	t.mu.Lock()
	plain := t.plain
	t.mu.Unlock()
	if plain {
		return ansi.Strip(s)
	}
	return s
}

func (t *TranscriptService) renderMarkdown(markdown string) (string, error) {
	style := t.glamourStyle()

	t.mu.Lock()
	defer t.mu.Unlock()

	renderer, ok := t.renderers[style]
	if !ok {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(t.wordWrap),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		t.renderers[style] = renderer
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.Trim(rendered, "\n"), nil
}

// glamourStyle maps the active theme onto a glamour standard style.
func (t *TranscriptService) glamourStyle() string {
	t.mu.Lock()
	plain := t.plain
	t.mu.Unlock()
	if plain {
		return "notty"
	}
	if t.themes.GetCurrentThemeType() == chattypes.ThemeDark {
		return "dark"
	}
	return "light"
}

// FormatDuration renders milliseconds as "< 1m", "Nm" or "Hh Mm".
func FormatDuration(milliseconds int64) string {
	minutes := milliseconds / int64(time.Minute/time.Millisecond)
	hours := minutes / 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return "< 1m"
	}
}

func senderLabel(sender chattypes.Sender) string {
	if sender == chattypes.SenderBot {
		return "Arthur"
	}
	return "You"
}

func formatClock(ms int64) string {
	if ms <= 0 {
		return "--:--"
	}
	return time.UnixMilli(ms).Local().Format("15:04")
}
