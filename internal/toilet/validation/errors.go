package validation

import (
	"sort"
	"strings"
)

// Errors maps a form field to its localized violation messages.
type Errors map[string][]string

// Add records one message for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the violating field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FieldErrors lets the HTTP layer render the per-field envelope.
func (e Errors) FieldErrors() map[string][]string {
	return e
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], "; "))
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}
