package chattypes

import "strings"

// ThemeKind is the closed set of visual themes.
type ThemeKind string

const (
	ThemeLight    ThemeKind = "light"
	ThemeDark     ThemeKind = "dark"
	ThemeAcademic ThemeKind = "academic"
)

// ThemeKinds returns every known theme kind in catalog order.
func ThemeKinds() []ThemeKind {
	return []ThemeKind{ThemeLight, ThemeDark, ThemeAcademic}
}

// IsValid reports whether k is a known theme kind.
func (k ThemeKind) IsValid() bool {
	switch k {
	case ThemeLight, ThemeDark, ThemeAcademic:
		return true
	}
	return false
}

// ParseThemeKind normalises a user supplied theme name.
// The second return value is false when the name is not a known kind.
func ParseThemeKind(name string) (ThemeKind, bool) {
	kind := ThemeKind(strings.ToLower(strings.TrimSpace(name)))
	return kind, kind.IsValid()
}

// ThemeColors holds the colour tokens of a theme.
type ThemeColors struct {
	Primary       string `yaml:"primary" json:"primary"`
	Secondary     string `yaml:"secondary" json:"secondary"`
	Background    string `yaml:"background" json:"background"`
	Surface       string `yaml:"surface" json:"surface"`
	Text          string `yaml:"text" json:"text"`
	TextSecondary string `yaml:"text_secondary" json:"textSecondary"`
	Accent        string `yaml:"accent" json:"accent"`
	Border        string `yaml:"border" json:"border"`
	Shadow        string `yaml:"shadow" json:"shadow"`
}

// ScaleTokens is a small/medium/large token scale.
type ScaleTokens struct {
	Small  string `yaml:"small" json:"small"`
	Medium string `yaml:"medium" json:"medium"`
	Large  string `yaml:"large" json:"large"`
}

// WeightTokens is the light/normal/bold font weight scale.
type WeightTokens struct {
	Light  string `yaml:"light" json:"light"`
	Normal string `yaml:"normal" json:"normal"`
	Bold   string `yaml:"bold" json:"bold"`
}

// ThemeTypography holds font tokens.
type ThemeTypography struct {
	FontFamily string       `yaml:"font_family" json:"fontFamily"`
	FontSize   ScaleTokens  `yaml:"font_size" json:"fontSize"`
	FontWeight WeightTokens `yaml:"font_weight" json:"fontWeight"`
}

// ThemeSpacing holds spacing tokens.
type ThemeSpacing struct {
	Small      string `yaml:"small" json:"small"`
	Medium     string `yaml:"medium" json:"medium"`
	Large      string `yaml:"large" json:"large"`
	ExtraLarge string `yaml:"extra_large" json:"extraLarge"`
}

// Theme is an immutable bundle of design tokens. It is always passed by value.
type Theme struct {
	Name         ThemeKind       `yaml:"name" json:"name"`
	Colors       ThemeColors     `yaml:"colors" json:"colors"`
	Typography   ThemeTypography `yaml:"typography" json:"typography"`
	Spacing      ThemeSpacing    `yaml:"spacing" json:"spacing"`
	BorderRadius ScaleTokens     `yaml:"border_radius" json:"borderRadius"`
}

// ThemeOption is one entry of the static theme catalog.
type ThemeOption struct {
	Type        ThemeKind `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}
