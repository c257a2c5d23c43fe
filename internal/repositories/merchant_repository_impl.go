package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type merchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(merchant *models.Merchant) error {
	if err := r.db.Create(merchant).Error; err != nil {
		return fmt.Errorf("failed to create merchant: %w", translate(err, nil))
	}
	return nil
}

func (r *merchantRepository) GetByID(id uint, includeDeleted bool) (*models.Merchant, error) {
	var merchant models.Merchant
	q := notDeleted(r.db.Where("id = ?", id), includeDeleted)
	if err := q.First(&merchant).Error; err != nil {
		return nil, translate(err, apperrors.ErrMerchantNotFound)
	}
	return &merchant, nil
}

func (r *merchantRepository) LockByID(id uint) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&merchant).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrMerchantNotFound)
	}
	return &merchant, nil
}

func (r *merchantRepository) GetByFEIN(fein string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.Where("fein = ?", fein).First(&merchant).Error; err != nil {
		return nil, translate(err, apperrors.ErrMerchantNotFound)
	}
	return &merchant, nil
}

func (r *merchantRepository) Update(merchant *models.Merchant) error {
	if err := r.db.Omit(clause.Associations).Save(merchant).Error; err != nil {
		return fmt.Errorf("failed to update merchant: %w", translate(err, nil))
	}
	return nil
}

func (r *merchantRepository) List(opts ListOptions) ([]models.Merchant, int64, error) {
	q := notDeleted(r.db.Model(&models.Merchant{}), opts.IncludeDeleted)
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		q = q.Where("company_name LIKE ? OR contact_person LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count merchants: %w", err)
	}

	var merchants []models.Merchant
	if err := opts.paginate(q.Order("created_at DESC, id DESC")).Find(&merchants).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list merchants: %w", err)
	}
	return merchants, total, nil
}

func (r *merchantRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.Merchant{}).
		Select("status, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count merchants by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
