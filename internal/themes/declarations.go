package themes

import "strings"

// Declaration is one style property/value pair.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Declarations is an ordered list of style declarations.
type Declarations []Declaration

// Get returns the value of the first declaration for property.
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy.
func (d Declarations) Clone() Declarations {
	out := make(Declarations, len(d))
	copy(out, d)
	return out
}

// CSS renders the declarations as a CSS block body, one per line.
func (d Declarations) CSS(indent string) string {
	var b strings.Builder
	for _, decl := range d {
		b.WriteString(indent)
		b.WriteString(decl.Property)
		b.WriteString(": ")
		b.WriteString(decl.Value)
		b.WriteString(";\n")
	}
	return b.String()
}

func decl(property, value string) Declaration {
	return Declaration{Property: property, Value: value}
}
