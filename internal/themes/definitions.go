// Package themes implements the closed family of visual themes: their token
// definitions, the per-kind component factories, and the descriptors they build.
package themes

import (
	"fmt"

	"arthurchat/internal/data/embedded"
	"arthurchat/pkg/chattypes"

	"gopkg.in/yaml.v3"
)

// definitions is populated once at package init from the embedded YAML files.
var definitions = map[chattypes.ThemeKind]chattypes.Theme{}

func init() {
	names, err := embedded.ListThemeNames()
	if err != nil {
		panic(fmt.Sprintf("themes: %v", err))
	}
	for _, name := range names {
		if !chattypes.ThemeKind(name).IsValid() {
			panic(fmt.Sprintf("themes: embedded definition %q has no theme kind", name))
		}
	}
	for _, kind := range chattypes.ThemeKinds() {
		definitions[kind] = mustLoadDefinition(kind)
	}
}

func mustLoadDefinition(kind chattypes.ThemeKind) chattypes.Theme {
	theme, err := loadDefinition(kind)
	if err != nil {
		panic(fmt.Sprintf("themes: %v", err))
	}
	return theme
}

func loadDefinition(kind chattypes.ThemeKind) (chattypes.Theme, error) {
	data, err := embedded.LoadThemeData(string(kind))
	if err != nil {
		return chattypes.Theme{}, err
	}
	return parseDefinition(kind, data)
}

func parseDefinition(kind chattypes.ThemeKind, data []byte) (chattypes.Theme, error) {
	var theme chattypes.Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return chattypes.Theme{}, fmt.Errorf("failed to parse %s theme: %w", kind, err)
	}
	if theme.Name != kind {
		return chattypes.Theme{}, fmt.Errorf("theme file for %s declares name %q", kind, theme.Name)
	}
	if err := validateDefinition(theme); err != nil {
		return chattypes.Theme{}, fmt.Errorf("invalid %s theme: %w", kind, err)
	}
	return theme, nil
}

// validateDefinition rejects definitions with any empty token.
func validateDefinition(theme chattypes.Theme) error {
	required := map[string]string{
		"colors.primary":          theme.Colors.Primary,
		"colors.secondary":        theme.Colors.Secondary,
		"colors.background":       theme.Colors.Background,
		"colors.surface":          theme.Colors.Surface,
		"colors.text":             theme.Colors.Text,
		"colors.text_secondary":   theme.Colors.TextSecondary,
		"colors.accent":           theme.Colors.Accent,
		"colors.border":           theme.Colors.Border,
		"colors.shadow":           theme.Colors.Shadow,
		"typography.font_family":  theme.Typography.FontFamily,
		"font_size.small":         theme.Typography.FontSize.Small,
		"font_size.medium":        theme.Typography.FontSize.Medium,
		"font_size.large":         theme.Typography.FontSize.Large,
		"font_weight.light":       theme.Typography.FontWeight.Light,
		"font_weight.normal":      theme.Typography.FontWeight.Normal,
		"font_weight.bold":        theme.Typography.FontWeight.Bold,
		"spacing.small":           theme.Spacing.Small,
		"spacing.medium":          theme.Spacing.Medium,
		"spacing.large":           theme.Spacing.Large,
		"spacing.extra_large":     theme.Spacing.ExtraLarge,
		"border_radius.small":     theme.BorderRadius.Small,
		"border_radius.medium":    theme.BorderRadius.Medium,
		"border_radius.large":     theme.BorderRadius.Large,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("missing %s", field)
		}
	}
	return nil
}

// Definition returns the token bundle for kind.
func Definition(kind chattypes.ThemeKind) (chattypes.Theme, bool) {
	theme, ok := definitions[kind]
	return theme, ok
}

// LightTheme returns the light token bundle.
func LightTheme() chattypes.Theme { return definitions[chattypes.ThemeLight] }

// DarkTheme returns the dark token bundle.
func DarkTheme() chattypes.Theme { return definitions[chattypes.ThemeDark] }

// AcademicTheme returns the academic token bundle.
func AcademicTheme() chattypes.Theme { return definitions[chattypes.ThemeAcademic] }
