package repositories

import (
	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

// PrincipalRepository defines the interface for principal persistence.
type PrincipalRepository interface {
	Create(principal *models.Principal) error
	GetByID(id uint, includeDeleted bool) (*models.Principal, error)
	Update(principal *models.Principal) error
	ListByMerchant(merchantID uint, includeDeleted bool) ([]models.Principal, error)
	// SumOwnership totals non-deleted ownership for the merchant,
	// skipping excludeID (0 excludes nothing).
	SumOwnership(merchantID, excludeID uint) (decimal.Decimal, error)
	ClearPrimaryContact(merchantID, exceptID uint) error
	ExistsWithSSN(merchantID uint, fingerprint string, excludeID uint) (bool, error)
	FindBySSN(fingerprint string) ([]models.Principal, error)
}
