// Package strings provides string slice helpers for user-supplied id lists.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
//	DedupeAndTrim([]string{"  hasSoap ", "public", "hasSoap", "", "  "})
//	// Returns: []string{"hasSoap", "public"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Set builds a membership set from values. Elements are used verbatim.
func Set(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// OrEmpty returns values, or a non-nil empty slice when values is nil.
func OrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
