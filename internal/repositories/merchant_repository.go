package repositories

import "mcacrm/internal/models"

// MerchantRepository defines the interface for merchant persistence.
type MerchantRepository interface {
	Create(merchant *models.Merchant) error
	GetByID(id uint, includeDeleted bool) (*models.Merchant, error)
	// LockByID reads the merchant with a row lock held until commit.
	LockByID(id uint) (*models.Merchant, error)
	GetByFEIN(fein string) (*models.Merchant, error)
	Update(merchant *models.Merchant) error
	List(opts ListOptions) ([]models.Merchant, int64, error)
	CountByStatus() (map[string]int64, error)
}
