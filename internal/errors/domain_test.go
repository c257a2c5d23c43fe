package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesRefinedCopies(t *testing.T) {
	refined := ErrOwnershipExceeded.WithMessage("total ownership would be %s%%", "101")
	wrapped := fmt.Errorf("create principal: %w", refined)

	assert.True(t, stderrors.Is(wrapped, ErrOwnershipExceeded))
	assert.False(t, stderrors.Is(wrapped, ErrDuplicateSSN))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "total ownership would be 101%", refined.Error())
}

func TestDomainError_FieldsInMessage(t *testing.T) {
	err := Validation("invalid merchant", FieldError{Field: "zip", Message: "must be 5 digits"})
	assert.Equal(t, "invalid merchant (zip: must be 5 digits)", err.Error())
	assert.True(t, IsKind(err, KindValidation))
}

func TestIntegrity_TranslatesToConflict(t *testing.T) {
	cause := stderrors.New("duplicated key not allowed")
	err := Integrity(cause)

	assert.Equal(t, KindConflict, err.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
	assert.Equal(t, "not_found", KindNotFound.String())
}
