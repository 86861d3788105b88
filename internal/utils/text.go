package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Excerpt returns the first limit runes of s followed by "...". The suffix is
// added even when s is shorter than limit.
func Excerpt(s string, limit int) string {
	runes := []rune(s)
	if limit >= 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}

// FitWidth truncates s to the given display width, ending in "..." when cut.
// Wide runes count as two cells.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// SingleLine collapses whitespace runs, newlines included, into one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func Divider(char string, width int) string {
	return strings.Repeat(char, width)
}
