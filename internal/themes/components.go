package themes

import (
	"sync"

	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/lipgloss"
)

// Renderer is implemented by every descriptor that can draw itself in a terminal.
type Renderer interface {
	Render() string
}

// MessageComponent describes how one chat message is styled.
// Its declarations are fixed when it is created; later theme switches do not
// touch it unless ApplyTheme is called explicitly.
type MessageComponent struct {
	mu      sync.RWMutex
	kind    chattypes.ThemeKind
	message string
	sender  chattypes.Sender
	rules   func(chattypes.Theme, chattypes.Sender) Declarations
	style   Declarations
}

// ApplyTheme restyles the message with theme using its own variant's rules.
func (m *MessageComponent) ApplyTheme(theme chattypes.Theme) {
	style := m.rules(theme, m.sender)
	m.mu.Lock()
	m.style = style
	m.mu.Unlock()
}

// Kind returns the theme family that created the descriptor.
func (m *MessageComponent) Kind() chattypes.ThemeKind { return m.kind }

// GetMessage returns the message text.
func (m *MessageComponent) GetMessage() string { return m.message }

// GetSender returns who wrote the message.
func (m *MessageComponent) GetSender() chattypes.Sender { return m.sender }

// Style returns a copy of the current declarations.
func (m *MessageComponent) Style() Declarations {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.style.Clone()
}

// Render draws the message as a styled terminal block.
func (m *MessageComponent) Render() string {
	return RenderBlock(m.Style(), m.message)
}

// ButtonComponent describes a themed action button.
type ButtonComponent struct {
	mu      sync.RWMutex
	kind    chattypes.ThemeKind
	label   string
	onClick func()
	rules   func(chattypes.Theme) Declarations
	style   Declarations
}

// ApplyTheme restyles the button with theme.
func (b *ButtonComponent) ApplyTheme(theme chattypes.Theme) {
	style := b.rules(theme)
	b.mu.Lock()
	b.style = style
	b.mu.Unlock()
}

// Kind returns the theme family that created the descriptor.
func (b *ButtonComponent) Kind() chattypes.ThemeKind { return b.kind }

// GetLabel returns the button label.
func (b *ButtonComponent) GetLabel() string { return b.label }

// OnClick invokes the click handler, if any.
func (b *ButtonComponent) OnClick() {
	if b.onClick != nil {
		b.onClick()
	}
}

// Style returns a copy of the current declarations.
func (b *ButtonComponent) Style() Declarations {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style.Clone()
}

// Render draws the button label.
func (b *ButtonComponent) Render() string {
	return RenderBlock(b.Style(), b.label)
}

// ContainerComponent groups other descriptors.
type ContainerComponent struct {
	mu       sync.RWMutex
	kind     chattypes.ThemeKind
	rules    func(chattypes.Theme) Declarations
	style    Declarations
	children []any
}

// ApplyTheme restyles the container frame. Children keep their own styles.
func (c *ContainerComponent) ApplyTheme(theme chattypes.Theme) {
	style := c.rules(theme)
	c.mu.Lock()
	c.style = style
	c.mu.Unlock()
}

// Kind returns the theme family that created the descriptor.
func (c *ContainerComponent) Kind() chattypes.ThemeKind { return c.kind }

// AddChild appends a child in display order.
func (c *ContainerComponent) AddChild(child any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, child)
}

// Children returns the children in insertion order.
func (c *ContainerComponent) Children() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]any, len(c.children))
	copy(out, c.children)
	return out
}

// Style returns a copy of the current declarations.
func (c *ContainerComponent) Style() Declarations {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.style.Clone()
}

// Render stacks every renderable child inside the container frame.
// Children that are plain strings are drawn verbatim; others are skipped.
func (c *ContainerComponent) Render() string {
	var parts []string
	for _, child := range c.Children() {
		switch v := child.(type) {
		case Renderer:
			parts = append(parts, v.Render())
		case string:
			parts = append(parts, v)
		}
	}
	return RenderBlock(c.Style(), lipgloss.JoinVertical(lipgloss.Left, parts...))
}
