package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var spaces = regexp.MustCompile(`\s+`)

// Text приводит видимый текст элемента к сравнимому виду:
// NBSP → пробел, пробелы схлопываются, края обрезаются.
func Text(text string) string {
	text = strings.ReplaceAll(text, "\u00A0", " ")
	text = spaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Contains reports whether the normalized text contains the normalized needle.
func Contains(text, needle string) bool {
	return strings.Contains(Text(text), Text(needle))
}

// Preview обрезает текст до maxChars символов (для логов).
// Режет по последнему пробелу, если он есть.
func Preview(text string, maxChars int) string {
	text = Text(text)
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	truncated := string([]rune(text)[:maxChars])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > 0 {
		return truncated[:lastSpace] + "…"
	}

	return truncated + "…"
}
