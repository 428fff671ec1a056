package models

import "strings"

// Recognized note themes. Anything else is kept in storage but left out
// of the theme tallies.
const (
	ThemeToAvoid    = "To Avoid"
	ThemeWarning    = "Warning"
	ThemeProfit     = "Profit"
	ThemeDontForget = "Don't Forget"
)

// NormalizeNoteTheme maps a free-text theme onto the closed theme set,
// case-insensitively. "Watch Out" is a legacy alias of Warning. The
// second return is false for unrecognized themes.
func NormalizeNoteTheme(theme string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "to avoid":
		return ThemeToAvoid, true
	case "warning", "watch out":
		return ThemeWarning, true
	case "profit":
		return ThemeProfit, true
	case "don't forget", "dont forget":
		return ThemeDontForget, true
	default:
		return "", false
	}
}
