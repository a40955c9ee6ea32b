package themes

import (
	"errors"
	"fmt"

	"arthurchat/pkg/chattypes"
)

// ErrUnknownTheme is returned by NewFactory for a kind outside the closed set.
var ErrUnknownTheme = errors.New("unknown theme")

// variant is one row of the theme family: how each component kind is styled.
type variant struct {
	message   func(chattypes.Theme, chattypes.Sender) Declarations
	button    func(chattypes.Theme) Declarations
	container func(chattypes.Theme) Declarations
}

var variants = map[chattypes.ThemeKind]variant{
	chattypes.ThemeLight: {
		message:   lightMessageRules,
		button:    lightButtonRules,
		container: lightContainerRules,
	},
	chattypes.ThemeDark: {
		message:   darkMessageRules,
		button:    darkButtonRules,
		container: darkContainerRules,
	},
	chattypes.ThemeAcademic: {
		message:   academicMessageRules,
		button:    academicButtonRules,
		container: academicContainerRules,
	},
}

// Factory builds message, button and container descriptors that all share one theme.
type Factory struct {
	kind    chattypes.ThemeKind
	theme   chattypes.Theme
	variant variant
}

// NewFactory returns the factory for kind.
func NewFactory(kind chattypes.ThemeKind) (*Factory, error) {
	v, ok := variants[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, kind)
	}
	theme, ok := Definition(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no definition for %q", ErrUnknownTheme, kind)
	}
	return &Factory{kind: kind, theme: theme, variant: v}, nil
}

// NewFactories returns one factory per theme kind.
func NewFactories() map[chattypes.ThemeKind]*Factory {
	out := make(map[chattypes.ThemeKind]*Factory, len(variants))
	for _, kind := range chattypes.ThemeKinds() {
		factory, err := NewFactory(kind)
		if err != nil {
			panic(err)
		}
		out[kind] = factory
	}
	return out
}

// Kind returns the theme kind this factory produces.
func (f *Factory) Kind() chattypes.ThemeKind {
	return f.kind
}

// GetTheme returns the factory's token bundle.
func (f *Factory) GetTheme() chattypes.Theme {
	return f.theme
}

// CreateMessageComponent returns a message descriptor styled with this factory's theme.
func (f *Factory) CreateMessageComponent(message string, sender chattypes.Sender) *MessageComponent {
	c := &MessageComponent{
		kind:    f.kind,
		message: message,
		sender:  sender,
		rules:   f.variant.message,
	}
	c.ApplyTheme(f.theme)
	return c
}

// CreateButtonComponent returns a button descriptor styled with this factory's theme.
func (f *Factory) CreateButtonComponent(label string, onClick func()) *ButtonComponent {
	c := &ButtonComponent{
		kind:    f.kind,
		label:   label,
		onClick: onClick,
		rules:   f.variant.button,
	}
	c.ApplyTheme(f.theme)
	return c
}

// CreateContainerComponent returns an empty container descriptor.
func (f *Factory) CreateContainerComponent() *ContainerComponent {
	c := &ContainerComponent{
		kind:  f.kind,
		rules: f.variant.container,
	}
	c.ApplyTheme(f.theme)
	return c
}
