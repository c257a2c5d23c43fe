// Package errors defines the domain error taxonomy shared by services and
// handlers. Services return *DomainError values (usually one of the
// sentinels below, refined with WithMessage); handlers map Kind to an
// HTTP status.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies a DomainError for propagation.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindValidation
	// KindIntegrity is a storage constraint violation that slipped past
	// the pre-checks. Repositories translate it into KindConflict.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	case KindIntegrity:
		return "integrity"
	default:
		return "internal"
	}
}

// FieldError is one field level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	cause   error
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *DomainError) Unwrap() error { return e.cause }

// Is matches on Code so refined copies of a sentinel still satisfy
// errors.Is(err, Sentinel).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e carrying a more precise message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// Wrap returns a copy of e that unwraps to cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

func New(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

func NotFound(code, message string) *DomainError {
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) *DomainError {
	return New(KindConflict, code, message)
}

func InvalidState(code, message string) *DomainError {
	return New(KindInvalidState, code, message)
}

// Validation builds a validation error carrying field details.
func Validation(message string, fields ...FieldError) *DomainError {
	return &DomainError{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: message, Fields: fields}
}

// Integrity wraps a storage constraint violation as a conflict.
func Integrity(cause error) *DomainError {
	return &DomainError{
		Kind:    KindConflict,
		Code:    "INTEGRITY_VIOLATION",
		Message: "record conflicts with existing data",
		cause:   cause,
	}
}

// As extracts a *DomainError from err.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindInternal when it is not a DomainError.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a DomainError of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
