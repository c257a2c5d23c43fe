package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type principalRepository struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) PrincipalRepository {
	return &principalRepository{db: db}
}

func (r *principalRepository) Create(principal *models.Principal) error {
	if err := r.db.Create(principal).Error; err != nil {
		return fmt.Errorf("failed to create principal: %w", translate(err, nil))
	}
	return nil
}

func (r *principalRepository) GetByID(id uint, includeDeleted bool) (*models.Principal, error) {
	var principal models.Principal
	q := notDeleted(r.db.Where("id = ?", id), includeDeleted)
	if err := q.First(&principal).Error; err != nil {
		return nil, translate(err, apperrors.ErrPrincipalNotFound)
	}
	return &principal, nil
}

func (r *principalRepository) Update(principal *models.Principal) error {
	if err := r.db.Save(principal).Error; err != nil {
		return fmt.Errorf("failed to update principal: %w", translate(err, nil))
	}
	return nil
}

func (r *principalRepository) ListByMerchant(merchantID uint, includeDeleted bool) ([]models.Principal, error) {
	var principals []models.Principal
	q := notDeleted(r.db.Where("merchant_id = ?", merchantID), includeDeleted)
	if err := q.Order("is_primary_contact DESC, id ASC").Find(&principals).Error; err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	return principals, nil
}

func (r *principalRepository) SumOwnership(merchantID, excludeID uint) (decimal.Decimal, error) {
	var shares []decimal.Decimal
	q := r.db.Model(&models.Principal{}).
		Where("merchant_id = ? AND is_deleted = ?", merchantID, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Pluck("ownership_percentage", &shares).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ownership: %w", err)
	}
	return decimal.Sum(decimal.Zero, shares...), nil
}

func (r *principalRepository) ClearPrimaryContact(merchantID, exceptID uint) error {
	err := r.db.Model(&models.Principal{}).
		Where("merchant_id = ? AND id <> ? AND is_primary_contact = ?", merchantID, exceptID, true).
		Update("is_primary_contact", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear primary contact: %w", err)
	}
	return nil
}

func (r *principalRepository) ExistsWithSSN(merchantID uint, fingerprint string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Principal{}).
		Where("merchant_id = ? AND ssn_fingerprint = ? AND is_deleted = ?", merchantID, fingerprint, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ssn: %w", err)
	}
	return count > 0, nil
}

func (r *principalRepository) FindBySSN(fingerprint string) ([]models.Principal, error) {
	var principals []models.Principal
	err := r.db.Where("ssn_fingerprint = ? AND is_deleted = ?", fingerprint, false).
		Order("merchant_id ASC").
		Find(&principals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search principals by ssn: %w", err)
	}
	return principals, nil
}
