package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors of the text renderer.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	IsDark  bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#101F38"),
		Accent:  lipgloss.Color("#8BC34A"),
		Muted:   lipgloss.Color("#6b7280"),
		Border:  lipgloss.Color("#dce0e5"),
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#8BC34A"),
		Accent:  lipgloss.Color("#2196F3"),
		Muted:   lipgloss.Color("#9ca3af"),
		Border:  lipgloss.Color("#2a3850"),
		IsDark:  true,
	}
}

// ThemeByName returns "light" or "dark".
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "light":
		return LightTheme(), nil
	case "dark":
		return DarkTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (want light or dark)", name)
	}
}

// glyphs maps icon classes to single-column terminal glyphs.
var glyphs = map[string]string{
	"fa-calendar":        "◷",
	"fa-calendar-check":  "◷",
	"fa-clock":           "◴",
	"fa-map-marker":      "⌖",
	"fa-door-open":       "⌖",
	"fa-user":            "☺",
	"fa-users":           "☺",
	"fa-microphone":      "♪",
	"fa-envelope":        "✉",
	"fa-phone":           "☎",
	"fa-building":        "⌂",
	"fa-briefcase":       "⌂",
	"fa-tag":             "$",
	"fa-dollar-sign":     "$",
	"fa-coins":           "$",
	"fa-calculator":      "Σ",
	"fa-shopping-cart":   "#",
	"fa-tags":            "#",
	"fa-check":           "✔",
	"fa-check-square":    "✔",
	"fa-times":           "✘",
	"fa-square":          "☐",
	"fa-plane":           "✈",
	"fa-plane-departure": "✈",
	"fa-plane-arrival":   "✈",
	"fa-route":           "⇢",
	"fa-ticket":          "⌗",
	"fa-flag":            "⚑",
	"fa-filter":          "⚑",
	"fa-bullhorn":        "»",
	"fa-folder":          "▤",
	"fa-sticky-note":     "✎",
	"fa-align-left":      "✎",
}

// Bullet is shown for lines without a known icon.
const Bullet = "•"

// Glyph returns the glyph for an icon class, or Bullet.
func Glyph(iconClass string) string {
	if g, ok := glyphs[iconClass]; ok {
		return g
	}
	return Bullet
}
