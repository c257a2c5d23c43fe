package repositories

import (
	"errors"

	apperrors "mcacrm/internal/errors"

	"gorm.io/gorm"
)

// translate maps storage errors onto the domain taxonomy. notFound is
// returned for gorm.ErrRecordNotFound; unique violations become conflicts.
func translate(err error, notFound *apperrors.DomainError) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Integrity(err)
	default:
		return err
	}
}

// IsDuplicateKey reports whether err came from a unique index violation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	de, ok := apperrors.As(err)
	return ok && de.Code == "INTEGRITY_VIOLATION"
}
