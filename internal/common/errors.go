// Package common defines shared sentinel errors and small helpers used across
// the client layers. Callers should use errors.Is to match the error kinds.
package common

import "errors"

var (
	// ErrValidation marks malformed, missing or mismatched input. It is always
	// raised before any store mutation.
	ErrValidation = errors.New("validation error")

	// ErrAuth marks a credential mismatch.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound marks an operation that targets a nonexistent account or route.
	ErrNotFound = errors.New("not found")
)

// FieldError is a user-facing error bound to an input field. Its message is
// shown as is; the Kind is exposed through Unwrap for errors.Is matching.
type FieldError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Msg
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// Validation returns a FieldError of kind ErrValidation.
func Validation(field, msg string) error {
	return &FieldError{Kind: ErrValidation, Field: field, Msg: msg}
}

// Auth returns a FieldError of kind ErrAuth.
func Auth(field, msg string) error {
	return &FieldError{Kind: ErrAuth, Field: field, Msg: msg}
}

// NotFound returns a FieldError of kind ErrNotFound.
func NotFound(field, msg string) error {
	return &FieldError{Kind: ErrNotFound, Field: field, Msg: msg}
}

// FieldOf reports the field name carried by err, if any.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
