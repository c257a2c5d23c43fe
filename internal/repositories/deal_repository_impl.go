package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(deal *models.Deal) error {
	if err := r.db.Omit(clause.Associations).Create(deal).Error; err != nil {
		return fmt.Errorf("failed to create deal: %w", translate(err, nil))
	}
	return nil
}

func (r *dealRepository) GetByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrDealNotFound)
	}
	return &deal, nil
}

func (r *dealRepository) LockByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&deal, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrDealNotFound)
	}
	return &deal, nil
}

func (r *dealRepository) GetByNumber(number string) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.Where("deal_number = ?", number).First(&deal).Error; err != nil {
		return nil, translate(err, apperrors.ErrDealNotFound)
	}
	return &deal, nil
}

func (r *dealRepository) Update(deal *models.Deal) error {
	if err := r.db.Omit(clause.Associations).Save(deal).Error; err != nil {
		return fmt.Errorf("failed to update deal: %w", translate(err, nil))
	}
	return nil
}

func (r *dealRepository) List(opts ListOptions) ([]models.Deal, int64, error) {
	q := r.db.Model(&models.Deal{})
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.MerchantID != 0 {
		q = q.Where("merchant_id = ?", opts.MerchantID)
	}
	if opts.Search != "" {
		q = q.Where("deal_number LIKE ?", "%"+opts.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	var deals []models.Deal
	if err := opts.paginate(q.Order("funding_date DESC, id DESC")).Find(&deals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, total, nil
}

func (r *dealRepository) ListByMerchant(merchantID uint) ([]models.Deal, error) {
	var deals []models.Deal
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("funding_date DESC, id DESC").
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merchant deals: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListActive() ([]models.Deal, error) {
	var deals []models.Deal
	err := r.db.Where("status = ?", models.DealStatusActive).
		Order("maturity_date ASC, id ASC").
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active deals: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListRenewalsByMerchant(merchantID uint) ([]models.Deal, error) {
	var deals []models.Deal
	err := r.db.Where("merchant_id = ? AND is_renewal = ?", merchantID, true).
		Order("funding_date DESC, id DESC").
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal deals: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Deal{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list deal ids: %w", err)
	}
	return ids, nil
}

func (r *dealRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.Deal{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count deals by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dealRepository) Totals() (*DealTotals, error) {
	var totals DealTotals
	err := r.db.Model(&models.Deal{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(funded_amount), 0) AS total_funded,
			COALESCE(SUM(total_paid), 0) AS total_collected,
			COALESCE(SUM(CASE WHEN status = ? THEN balance_remaining ELSE 0 END), 0) AS total_outstanding,
			COALESCE(SUM(factor_rate), 0) AS factor_sum`, models.DealStatusActive).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to total deals: %w", err)
	}
	return &totals, nil
}
