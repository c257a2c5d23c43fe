package repositories

import "mcacrm/internal/models"

// OfferRepository defines the interface for offer persistence.
type OfferRepository interface {
	Create(offer *models.Offer) error
	GetByID(id uint, includeDeleted bool) (*models.Offer, error)
	LockByID(id uint) (*models.Offer, error)
	Update(offer *models.Offer) error
	List(opts ListOptions) ([]models.Offer, int64, error)
	ListByMerchant(merchantID uint, includeDeleted bool) ([]models.Offer, error)
	// GetSelectedByMerchant returns the merchant's selected offer other
	// than excludeID, or ErrOfferNotFound.
	GetSelectedByMerchant(merchantID, excludeID uint) (*models.Offer, error)
	DealIDTaken(dealID string, excludeID uint) (bool, error)
}
