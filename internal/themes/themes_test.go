package themes

import (
	"strings"
	"testing"

	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsLoadFromEmbeddedYAML(t *testing.T) {
	light := LightTheme()
	assert.Equal(t, chattypes.ThemeLight, light.Name)
	assert.Equal(t, "#3b82f6", light.Colors.Primary)
	assert.Equal(t, "rgba(0, 0, 0, 0.1)", light.Colors.Shadow)
	assert.Equal(t, "600", light.Typography.FontWeight.Bold)
	assert.Equal(t, "2rem", light.Spacing.ExtraLarge)

	dark := DarkTheme()
	assert.Equal(t, chattypes.ThemeDark, dark.Name)
	assert.Equal(t, "#0f172a", dark.Colors.Background)
	assert.Equal(t, "#cbd5e1", dark.Colors.TextSecondary)

	academic := AcademicTheme()
	assert.Equal(t, chattypes.ThemeAcademic, academic.Name)
	assert.Equal(t, `Georgia, "Times New Roman", serif`, academic.Typography.FontFamily)
	assert.Equal(t, "700", academic.Typography.FontWeight.Bold)
	assert.Equal(t, "0.125rem", academic.BorderRadius.Small)
}

func TestDefinitionsAreValues(t *testing.T) {
	theme := LightTheme()
	theme.Colors.Primary = "#000000"
	assert.Equal(t, "#3b82f6", LightTheme().Colors.Primary)
}

func TestParseDefinitionRejectsBadInput(t *testing.T) {
	_, err := parseDefinition(chattypes.ThemeDark, []byte("name: light\n"))
	assert.Error(t, err)

	_, err = parseDefinition(chattypes.ThemeDark, []byte("name: dark\ncolors:\n  primary: \"#fff\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")

	_, err = parseDefinition(chattypes.ThemeDark, []byte(":::"))
	assert.Error(t, err)
}

func TestNewFactory(t *testing.T) {
	for _, kind := range chattypes.ThemeKinds() {
		factory, err := NewFactory(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, factory.Kind())
		assert.Equal(t, kind, factory.GetTheme().Name)
	}

	_, err := NewFactory("neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Len(t, NewFactories(), 3)
}

func TestMessageComponentStyling(t *testing.T) {
	tests := []struct {
		kind       chattypes.ThemeKind
		sender     chattypes.Sender
		background string
		color      string
		radius     string
		padding    string
		shadow     string
	}{
		{chattypes.ThemeLight, chattypes.SenderUser, "#3b82f6", "#ffffff", "0.5rem", "1rem", "0 2px 8px rgba(0, 0, 0, 0.1)"},
		{chattypes.ThemeLight, chattypes.SenderBot, "#f8fafc", "#1e293b", "0.5rem", "1rem", "0 2px 8px rgba(0, 0, 0, 0.1)"},
		{chattypes.ThemeDark, chattypes.SenderUser, "#60a5fa", "#f1f5f9", "0.5rem", "1rem", "0 4px 16px rgba(0, 0, 0, 0.3)"},
		{chattypes.ThemeDark, chattypes.SenderBot, "#1e293b", "#f1f5f9", "0.5rem", "1rem", "0 4px 16px rgba(0, 0, 0, 0.3)"},
		{chattypes.ThemeAcademic, chattypes.SenderUser, "#7c3aed", "#ffffff", "0.125rem", "1.5rem", "0 1px 3px rgba(0, 0, 0, 0.05)"},
		{chattypes.ThemeAcademic, chattypes.SenderBot, "#fffbeb", "#374151", "0.125rem", "1.5rem", "0 1px 3px rgba(0, 0, 0, 0.05)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.sender), func(t *testing.T) {
			factory, err := NewFactory(tt.kind)
			require.NoError(t, err)

			msg := factory.CreateMessageComponent("hello", tt.sender)
			assert.Equal(t, "hello", msg.GetMessage())
			assert.Equal(t, tt.sender, msg.GetSender())
			assert.Equal(t, tt.kind, msg.Kind())

			style := msg.Style()
			assertDecl(t, style, "background-color", tt.background)
			assertDecl(t, style, "color", tt.color)
			assertDecl(t, style, "border-radius", tt.radius)
			assertDecl(t, style, "padding", tt.padding)
			assertDecl(t, style, "box-shadow", tt.shadow)
		})
	}
}

func TestVariantSpecificDeclarations(t *testing.T) {
	light, _ := NewFactory(chattypes.ThemeLight)
	dark, _ := NewFactory(chattypes.ThemeDark)
	academic, _ := NewFactory(chattypes.ThemeAcademic)

	_, hasBorder := light.CreateMessageComponent("x", chattypes.SenderBot).Style().Get("border")
	assert.False(t, hasBorder)
	assertDecl(t, dark.CreateMessageComponent("x", chattypes.SenderBot).Style(), "border", "1px solid #334155")
	assertDecl(t, academic.CreateMessageComponent("x", chattypes.SenderBot).Style(), "line-height", "1.6")

	assertDecl(t, light.CreateButtonComponent("Send", nil).Style(), "border", "none")
	assertDecl(t, dark.CreateButtonComponent("Send", nil).Style(), "box-shadow", "0 2px 8px rgba(0, 0, 0, 0.3)")
	academicButton := academic.CreateButtonComponent("Send", nil).Style()
	assertDecl(t, academicButton, "background-color", "transparent")
	assertDecl(t, academicButton, "border", "2px solid #7c3aed")
	assertDecl(t, academicButton, "padding", "0.5rem 1.5rem")
	assertDecl(t, academicButton, "font-weight", "700")
	assertDecl(t, academicButton, "text-transform", "uppercase")

	assertDecl(t, light.CreateContainerComponent().Style(), "box-shadow", "0 4px 12px rgba(0, 0, 0, 0.1)")
	assertDecl(t, dark.CreateContainerComponent().Style(), "box-shadow", "0 8px 24px rgba(0, 0, 0, 0.3)")
	academicContainer := academic.CreateContainerComponent().Style()
	assertDecl(t, academicContainer, "padding", "2rem")
	assertDecl(t, academicContainer, "margin", "1rem")
}

func TestDescriptorsAreFrozenUntilReapplied(t *testing.T) {
	light, _ := NewFactory(chattypes.ThemeLight)
	msg := light.CreateMessageComponent("hi", chattypes.SenderUser)

	style := msg.Style()
	style[0].Value = "#000000"
	assertDecl(t, msg.Style(), "background-color", "#3b82f6")

	msg.ApplyTheme(DarkTheme())
	assertDecl(t, msg.Style(), "background-color", "#60a5fa")
	// Light rules keep white text for users even with dark tokens.
	assertDecl(t, msg.Style(), "color", "#ffffff")
}

func TestButtonClick(t *testing.T) {
	factory, _ := NewFactory(chattypes.ThemeDark)
	clicks := 0
	button := factory.CreateButtonComponent("Go", func() { clicks++ })

	button.OnClick()
	button.OnClick()
	assert.Equal(t, 2, clicks)
	assert.Equal(t, "Go", button.GetLabel())

	factory.CreateButtonComponent("noop", nil).OnClick()
}

func TestContainerChildrenAndRender(t *testing.T) {
	factory, _ := NewFactory(chattypes.ThemeAcademic)
	container := factory.CreateContainerComponent()
	container.AddChild(factory.CreateMessageComponent("first", chattypes.SenderUser))
	container.AddChild("plain line")
	container.AddChild(42)

	assert.Len(t, container.Children(), 3)

	out := ansi.Strip(container.Render())
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "plain line")
	assert.NotContains(t, out, "42")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "plain line"))
}

func TestRenderBlockTransformsAndBorders(t *testing.T) {
	academic, _ := NewFactory(chattypes.ThemeAcademic)
	out := ansi.Strip(academic.CreateButtonComponent("send", nil).Render())
	assert.Contains(t, out, "SEND")
	assert.Contains(t, out, "┃")

	light, _ := NewFactory(chattypes.ThemeLight)
	out = ansi.Strip(light.CreateButtonComponent("send", nil).Render())
	assert.Contains(t, out, "send")
	assert.NotContains(t, out, "│")
}

func TestBoxSpacing(t *testing.T) {
	v, h := boxSpacing("1rem")
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, h)

	v, h = boxSpacing("0.5rem 1.5rem")
	assert.Equal(t, 0, v)
	assert.Equal(t, 3, h)

	v, h = boxSpacing("32px")
	assert.Equal(t, 2, v)
	assert.Equal(t, 4, h)
}

func TestAvailableThemes(t *testing.T) {
	catalog := AvailableThemes()
	require.Len(t, catalog, 3)
	assert.Equal(t, chattypes.ThemeLight, catalog[0].Type)
	assert.Equal(t, "Dark Theme", catalog[1].Name)
	assert.Equal(t, "Professional theme with serif typography for academic contexts", catalog[2].Description)
}

type recordingSurface struct {
	properties map[string]string
	class      string
}

func (r *recordingSurface) SetProperty(name, value string) { r.properties[name] = value }
func (r *recordingSurface) ReplaceThemeClass(className string) { r.class = className }

func TestApplyWritesAllVariables(t *testing.T) {
	surface := &recordingSurface{properties: map[string]string{}}
	Apply(surface, DarkTheme())

	assert.Len(t, surface.properties, 23)
	assert.Equal(t, "#60a5fa", surface.properties["--theme-primary"])
	assert.Equal(t, "2rem", surface.properties["--theme-spacing-xl"])
	assert.Equal(t, "theme-dark", surface.class)
}

func assertDecl(t *testing.T, style Declarations, property, want string) {
	t.Helper()
	got, ok := style.Get(property)
	require.True(t, ok, "missing %s", property)
	assert.Equal(t, want, got, property)
}
