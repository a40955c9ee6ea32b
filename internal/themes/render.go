package themes

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// remColumns is how many terminal columns one rem of horizontal spacing maps to.
// Vertically one rem is one line, rounded down.
const remColumns = 2.0

// RenderBlock draws content with the subset of declarations a terminal can express:
// colours, padding, margin, border, bold weight and uppercase transform.
func RenderBlock(style Declarations, content string) string {
	s := lipgloss.NewStyle()

	if v, ok := style.Get("background-color"); ok && isHexColor(v) {
		s = s.Background(lipgloss.Color(v))
	}
	if v, ok := style.Get("color"); ok && isHexColor(v) {
		s = s.Foreground(lipgloss.Color(v))
	}
	if v, ok := style.Get("padding"); ok {
		vertical, horizontal := boxSpacing(v)
		s = s.Padding(vertical, horizontal)
	}
	if v, ok := style.Get("margin"); ok {
		vertical, horizontal := boxSpacing(v)
		s = s.Margin(vertical, horizontal)
	}
	if v, ok := style.Get("border"); ok {
		if border, color, ok := parseBorder(v, style); ok {
			s = s.Border(border)
			if isHexColor(color) {
				s = s.BorderForeground(lipgloss.Color(color))
			}
		}
	}
	if v, ok := style.Get("font-weight"); ok {
		if weight, err := strconv.Atoi(v); err == nil && weight >= 600 {
			s = s.Bold(true)
		}
	}
	if v, ok := style.Get("text-transform"); ok && v == "uppercase" {
		content = strings.ToUpper(content)
	}

	return s.Render(content)
}

// boxSpacing converts a one or two value CSS spacing shorthand into cell counts.
func boxSpacing(value string) (vertical, horizontal int) {
	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		return 0, 0
	case 1:
		rem := parseRem(fields[0])
		return lines(rem), columns(rem)
	default:
		return lines(parseRem(fields[0])), columns(parseRem(fields[1]))
	}
}

func lines(rem float64) int {
	return int(math.Floor(rem))
}

func columns(rem float64) int {
	return int(math.Round(rem * remColumns))
}

// parseRem reads "1.5rem" or "24px" (16px per rem). Unknown units read as zero.
func parseRem(value string) float64 {
	switch {
	case strings.HasSuffix(value, "rem"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(value, "rem"), 64)
		if err != nil {
			return 0
		}
		return f
	case strings.HasSuffix(value, "px"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
		if err != nil {
			return 0
		}
		return f / 16
	}
	return 0
}

// parseBorder maps "Npx solid <color>" to a lipgloss border. Rounded corners are
// used when the radius is larger than a quarter rem; widths of 2px and up are thick.
func parseBorder(value string, style Declarations) (lipgloss.Border, string, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 || fields[0] == "none" {
		return lipgloss.Border{}, "", false
	}

	color := ""
	if len(fields) >= 3 {
		color = fields[2]
	}

	if parseRem(fields[0])*16 >= 2 {
		return lipgloss.ThickBorder(), color, true
	}
	if radius, ok := style.Get("border-radius"); ok && parseRem(radius) > 0.25 {
		return lipgloss.RoundedBorder(), color, true
	}
	return lipgloss.NormalBorder(), color, true
}

func isHexColor(value string) bool {
	if !strings.HasPrefix(value, "#") {
		return false
	}
	switch len(value) {
	case 4, 7, 9:
	default:
		return false
	}
	_, err := strconv.ParseUint(value[1:], 16, 64)
	return err == nil
}
