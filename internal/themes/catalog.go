package themes

import "arthurchat/pkg/chattypes"

// ClassPrefix is prepended to the theme kind to form the surface marker class.
const ClassPrefix = "theme-"

// AvailableThemes returns the static catalog shown to users.
func AvailableThemes() []chattypes.ThemeOption {
	return []chattypes.ThemeOption{
		{
			Type:        chattypes.ThemeLight,
			Name:        "Light Theme",
			Description: "Clean and modern light interface",
		},
		{
			Type:        chattypes.ThemeDark,
			Name:        "Dark Theme",
			Description: "Elegant dark interface for low-light environments",
		},
		{
			Type:        chattypes.ThemeAcademic,
			Name:        "Academic Theme",
			Description: "Professional theme with serif typography for academic contexts",
		},
	}
}

// ClassName returns the surface marker class for kind, e.g. "theme-dark".
func ClassName(kind chattypes.ThemeKind) string {
	return ClassPrefix + string(kind)
}

// GlobalVariables returns the style variables a theme publishes on the surface, in a fixed order.
func GlobalVariables(theme chattypes.Theme) Declarations {
	return Declarations{
		decl("--theme-primary", theme.Colors.Primary),
		decl("--theme-secondary", theme.Colors.Secondary),
		decl("--theme-background", theme.Colors.Background),
		decl("--theme-surface", theme.Colors.Surface),
		decl("--theme-text", theme.Colors.Text),
		decl("--theme-text-secondary", theme.Colors.TextSecondary),
		decl("--theme-accent", theme.Colors.Accent),
		decl("--theme-border", theme.Colors.Border),
		decl("--theme-shadow", theme.Colors.Shadow),

		decl("--theme-font-family", theme.Typography.FontFamily),
		decl("--theme-font-size-small", theme.Typography.FontSize.Small),
		decl("--theme-font-size-medium", theme.Typography.FontSize.Medium),
		decl("--theme-font-size-large", theme.Typography.FontSize.Large),
		decl("--theme-font-weight-light", theme.Typography.FontWeight.Light),
		decl("--theme-font-weight-normal", theme.Typography.FontWeight.Normal),
		decl("--theme-font-weight-bold", theme.Typography.FontWeight.Bold),

		decl("--theme-spacing-small", theme.Spacing.Small),
		decl("--theme-spacing-medium", theme.Spacing.Medium),
		decl("--theme-spacing-large", theme.Spacing.Large),
		decl("--theme-spacing-xl", theme.Spacing.ExtraLarge),

		decl("--theme-border-radius-small", theme.BorderRadius.Small),
		decl("--theme-border-radius-medium", theme.BorderRadius.Medium),
		decl("--theme-border-radius-large", theme.BorderRadius.Large),
	}
}

// Apply writes theme's global variables and marker class onto surface.
func Apply(surface chattypes.StyleSurface, theme chattypes.Theme) {
	for _, v := range GlobalVariables(theme) {
		surface.SetProperty(v.Property, v.Value)
	}
	surface.ReplaceThemeClass(ClassName(theme.Name))
}
