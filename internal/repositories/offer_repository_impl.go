package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(offer *models.Offer) error {
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", translate(err, nil))
	}
	return nil
}

func (r *offerRepository) GetByID(id uint, includeDeleted bool) (*models.Offer, error) {
	var offer models.Offer
	q := notDeleted(r.db.Where("id = ?", id), includeDeleted)
	if err := q.First(&offer).Error; err != nil {
		return nil, translate(err, apperrors.ErrOfferNotFound)
	}
	return &offer, nil
}

func (r *offerRepository) LockByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&offer).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrOfferNotFound)
	}
	return &offer, nil
}

func (r *offerRepository) Update(offer *models.Offer) error {
	if err := r.db.Save(offer).Error; err != nil {
		return fmt.Errorf("failed to update offer: %w", translate(err, nil))
	}
	return nil
}

func (r *offerRepository) List(opts ListOptions) ([]models.Offer, int64, error) {
	q := notDeleted(r.db.Model(&models.Offer{}), opts.IncludeDeleted)
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.MerchantID != 0 {
		q = q.Where("merchant_id = ?", opts.MerchantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	var offers []models.Offer
	if err := opts.paginate(q.Order("created_at DESC, id DESC")).Find(&offers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, total, nil
}

func (r *offerRepository) ListByMerchant(merchantID uint, includeDeleted bool) ([]models.Offer, error) {
	var offers []models.Offer
	q := notDeleted(r.db.Where("merchant_id = ?", merchantID), includeDeleted)
	if err := q.Order("created_at DESC, id DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) GetSelectedByMerchant(merchantID, excludeID uint) (*models.Offer, error) {
	var offer models.Offer
	q := r.db.Where("merchant_id = ? AND status = ? AND is_deleted = ?",
		merchantID, models.OfferStatusSelected, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&offer).Error; err != nil {
		return nil, translate(err, apperrors.ErrOfferNotFound)
	}
	return &offer, nil
}

func (r *offerRepository) DealIDTaken(dealID string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Offer{}).Where("deal_id = ?", dealID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check deal id: %w", err)
	}
	return count > 0, nil
}
