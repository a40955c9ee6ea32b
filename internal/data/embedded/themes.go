// Package embedded provides access to the theme definitions compiled into the binary.
package embedded

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

// ThemesFS contains one YAML file per theme kind.
//
//go:embed themes/*.yaml
var ThemesFS embed.FS

// LoadThemeData returns the raw YAML for the named theme.
func LoadThemeData(name string) ([]byte, error) {
	filename := strings.TrimSuffix(name, ".yaml") + ".yaml"
	data, err := ThemesFS.ReadFile(path.Join("themes", filename))
	if err != nil {
		return nil, fmt.Errorf("embedded theme not found: %s", name)
	}
	return data, nil
}

// ListThemeNames returns the names of all embedded themes without extension.
func ListThemeNames() ([]string, error) {
	entries, err := ThemesFS.ReadDir("themes")
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return names, nil
}
