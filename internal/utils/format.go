package utils

import (
	"strings"
	"unicode/utf8"
)

// ShortID keeps the last words of a proquint identifier. Ids are
// time-ordered, so the leading words change slowest.
func ShortID(id string, words int) string {
	parts := strings.Split(id, "-")
	if words <= 0 || len(parts) <= words {
		return id
	}
	return "…" + strings.Join(parts[len(parts)-words:], "-")
}

// Truncate cuts s to at most width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// OrDash replaces an empty string with "-" for table cells.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
