package logger

import "strings"

// Truncate flattens s to a single line and shortens it to at most maxLen
// runes for use in log fields. Multi-byte characters are never split.
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
