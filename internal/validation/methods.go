package validation

import (
	"fmt"
	"strings"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
)

// Validator collects cross-field failures that struct tags cannot express.
type Validator struct {
	Errors []apperrors.FieldError
}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, apperrors.FieldError{Field: field, Message: message})
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// NotFuture checks that t is not after today.
func (v *Validator) NotFuture(field string, t time.Time) {
	v.Check(!t.After(today()), field, "must not be in the future")
}

// OneOf checks membership in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// Err returns the collected failures as a validation error, or nil.
func (v *Validator) Err(message string) error {
	if v.Valid() {
		return nil
	}
	return apperrors.Validation(message, v.Errors...)
}

func today() time.Time {
	return models.Today()
}
