package models

import "strings"

// CountryFlag converts a two-letter country code to its flag emoji made
// of regional indicator symbols. Anything else yields an empty string.
func CountryFlag(code string) string {
	code = strings.ToUpper(code)
	if len(code) != 2 {
		return ""
	}
	var sb strings.Builder
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ""
		}
		sb.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return sb.String()
}
