package errors

import (
	"fmt"
	"strings"
)

// FieldError describes a validation failure on a single submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures for one submission so the
// caller can render targeted feedback instead of a single opaque failure.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a failure for the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// FieldMessage returns the message recorded for field, or "" if none.
func (e *ValidationError) FieldMessage(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// ErrOrNil returns the error itself when at least one field failed, nil
// otherwise. Callers build up the set and return the result directly.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
