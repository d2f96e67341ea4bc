package validators

import "strings"

// SanitizeString trims whitespace, strips control characters, and caps the
// value at maxLen runes. Truncation is rune-based so Serbian diacritics
// (č, ć, š, ž, đ) are never split mid-character.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
	trimmed := strings.TrimSpace(cleaned)
	if maxLen > 0 {
		runes := []rune(trimmed)
		if len(runes) > maxLen {
			return strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return trimmed
}
