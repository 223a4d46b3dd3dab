// Package common defines shared constants and the error taxonomy used across
// the ledger core and its transports. Callers should use errors.Is to match
// error kinds and errors.As with *FieldError to read per-field messages.
package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrDuplicateDay      = errors.New("duplicate day bucket")
	ErrDuplicateUserName = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")

	// Service-level error kinds.
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrEditWindow = errors.New("edit window closed")
	ErrorInternal = errors.New("internal error")
)

// FieldError is a caller-facing error that names the offending fields so a UI
// can attach each message inline. Kind is one of the service-level sentinels.
type FieldError struct {
	Kind   error
	Fields map[string]string
}

// NewFieldError builds a FieldError with a single field message.
func NewFieldError(kind error, field, msg string) *FieldError {
	return &FieldError{Kind: kind, Fields: map[string]string{field: msg}}
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Kind.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// Fields extracts the per-field messages from err, or nil if err carries none.
func Fields(err error) map[string]string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}
