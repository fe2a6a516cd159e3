package common

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags the outcome of a service operation. The transport layer maps each
// kind to a status code.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindUnauthorized
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// FieldError describes one violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every field-level violation found in an input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+":"+f.Rule)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// ConflictError reports a unique field that is already taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

func (e *ConflictError) Unwrap() error { return ErrorAlreadyExists }

// InternalError hides store or signing failures from clients. Err keeps the
// full detail for server-side logs.
type InternalError struct {
	Err error
}

// Internal wraps err as an InternalError.
func Internal(err error) *InternalError {
	return &InternalError{Err: err}
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return ErrorInternal.Error()
	}
	return ErrorInternal.Error() + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() []error { return []error{ErrorInternal, e.Err} }

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}

	var cerr *ConflictError
	if errors.As(err, &cerr) {
		return KindConflict
	}

	if errors.Is(err, ErrInvalidCredentials) {
		return KindUnauthorized
	}

	return KindInternal
}
