package sanitize

import "fmt"

// RejectionError reports a sanitization rule violation on a scalar field.
// The sanitizer fails closed: callers get a typed error, never a silently
// truncated value.
type RejectionError struct {
	Field  string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("input validation failed for %s: %s", e.Field, e.Reason)
}

func reject(field, format string, args ...any) error {
	return &RejectionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
