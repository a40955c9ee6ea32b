// Package surface models the global rendering surface that themes are applied to:
// a set of root style variables plus the class list of the document body.
package surface

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"arthurchat/internal/fsutil"
)

var themeClassPattern = regexp.MustCompile(`^theme-\w+$`)

// Document is an in-memory stand-in for a styled document root.
// Property insertion order is kept so CSS output is stable.
type Document struct {
	mu         sync.RWMutex
	order      []string
	properties map[string]string
	classes    []string
}

// NewDocument returns a document whose body carries the given classes.
func NewDocument(classes ...string) *Document {
	return &Document{
		properties: make(map[string]string),
		classes:    append([]string(nil), classes...),
	}
}

// SetProperty sets a root style variable.
func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.properties[name]; !exists {
		d.order = append(d.order, name)
	}
	d.properties[name] = value
}

// ReplaceThemeClass drops every theme-<name> class and adds className.
// Unrelated classes are kept in place.
func (d *Document) ReplaceThemeClass(className string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.classes[:0]
	for _, c := range d.classes {
		if !themeClassPattern.MatchString(c) {
			kept = append(kept, c)
		}
	}
	d.classes = append(kept, className)
}

// AddClass adds a non-theme class if it is not already present.
func (d *Document) AddClass(className string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.classes {
		if c == className {
			return
		}
	}
	d.classes = append(d.classes, className)
}

// Property returns a root variable.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.properties[name]
	return v, ok
}

// Properties returns a copy of all root variables.
func (d *Document) Properties() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]string, len(d.properties))
	for k, v := range d.properties {
		out[k] = v
	}
	return out
}

// Classes returns the body class list.
func (d *Document) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.classes...)
}

// ThemeClasses returns only the theme-<name> classes. After any
// ReplaceThemeClass call it has exactly one element.
func (d *Document) ThemeClasses() []string {
	var out []string
	for _, c := range d.Classes() {
		if themeClassPattern.MatchString(c) {
			out = append(out, c)
		}
	}
	return out
}

// CSS renders the variables as a :root block followed by the body class attribute.
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range d.order {
		fmt.Fprintf(&b, "  %s: %s;\n", name, d.properties[name])
	}
	b.WriteString("}\n")
	fmt.Fprintf(&b, "/* body class=%q */\n", strings.Join(d.classes, " "))
	return b.String()
}

// WriteCSS writes CSS() to path atomically.
func (d *Document) WriteCSS(path string) error {
	return fsutil.WriteFileAtomic(path, []byte(d.CSS()), 0o644)
}
