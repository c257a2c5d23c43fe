package repositories

import (
	"fmt"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", translate(err, nil))
	}
	return nil
}

func (r *paymentRepository) GetByID(id uint, includeDeleted bool) (*models.Payment, error) {
	var payment models.Payment
	q := notDeleted(r.db.Where("id = ?", id), includeDeleted)
	if err := q.First(&payment).Error; err != nil {
		return nil, translate(err, apperrors.ErrPaymentNotFound)
	}
	return &payment, nil
}

// Update persists the mutable columns only.
func (r *paymentRepository) Update(payment *models.Payment) error {
	err := r.db.Model(payment).
		Select("bounced", "notes", "is_deleted", "deleted_at", "deleted_by", "updated_at").
		Updates(payment).Error
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", translate(err, nil))
	}
	return nil
}

func (r *paymentRepository) ListByDeal(dealID uint, includeDeleted bool) ([]models.Payment, error) {
	var payments []models.Payment
	q := notDeleted(r.db.Where("deal_id = ?", dealID), includeDeleted)
	if err := q.Order("date DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) ListCounted(dealID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("deal_id = ? AND bounced = ? AND is_deleted = ?", dealID, false, false).
		Order("date ASC, id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list counted payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) List(opts ListOptions) ([]models.Payment, int64, error) {
	q := notDeleted(r.db.Model(&models.Payment{}), opts.IncludeDeleted)
	if opts.Search != "" {
		q = q.Where("type = ?", opts.Search)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	if err := opts.paginate(q.Order("date DESC, id DESC")).Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

// ListBounced returns bounced payments, for one deal when dealID is set.
func (r *paymentRepository) ListBounced(dealID uint) ([]models.Payment, error) {
	q := r.db.Where("bounced = ? AND is_deleted = ?", true, false)
	if dealID != 0 {
		q = q.Where("deal_id = ?", dealID)
	}
	var payments []models.Payment
	if err := q.Order("date DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list bounced payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) ListSince(since time.Time, limit int) ([]models.Payment, error) {
	q := r.db.Where("date >= ? AND is_deleted = ?", since, false).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	return payments, nil
}

// StatsByType groups non-bounced payments by type, for one deal when
// dealID is set.
func (r *paymentRepository) StatsByType(dealID uint) ([]PaymentTypeStat, error) {
	q := r.db.Model(&models.Payment{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("bounced = ? AND is_deleted = ?", false, false)
	if dealID != 0 {
		q = q.Where("deal_id = ?", dealID)
	}
	var stats []PaymentTypeStat
	if err := q.Group("type").Order("type ASC").Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to compute payment stats: %w", err)
	}
	return stats, nil
}
