// Package validate holds the advisory validators and sanitizers applied by
// the HTTP layer before mutations. Slices never validate; callers decide.
package validate

import (
	"fmt"
	"html"
	"strings"
)

// Messages is a list of human-readable validation failures; empty means valid.
type Messages []string

// OK reports whether validation passed.
func (m Messages) OK() bool { return len(m) == 0 }

// Required checks that a field is non-blank.
func Required(msgs Messages, field, value string) Messages {
	if strings.TrimSpace(value) == "" {
		return append(msgs, fmt.Sprintf("%s is required", field))
	}
	return msgs
}

// MinLen checks that a field has at least n characters after trimming.
func MinLen(msgs Messages, field, value string, n int) Messages {
	if len(strings.TrimSpace(value)) < n {
		return append(msgs, fmt.Sprintf("%s must be at least %d characters", field, n))
	}
	return msgs
}

// Sanitize trims and escapes HTML-unsafe characters before persistence.
func Sanitize(value string) string {
	return html.EscapeString(strings.TrimSpace(value))
}
