package repositories

import (
	"time"

	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentTypeStat aggregates payments of one type.
type PaymentTypeStat struct {
	Type        string          `json:"type"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PaymentRepository defines the interface for payment persistence.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint, includeDeleted bool) (*models.Payment, error)
	Update(payment *models.Payment) error
	ListByDeal(dealID uint, includeDeleted bool) ([]models.Payment, error)
	// ListCounted returns the payments that count toward a deal balance:
	// not bounced and not deleted.
	ListCounted(dealID uint) ([]models.Payment, error)
	List(opts ListOptions) ([]models.Payment, int64, error)
	ListBounced(dealID uint) ([]models.Payment, error)
	ListSince(since time.Time, limit int) ([]models.Payment, error)
	StatsByType(dealID uint) ([]PaymentTypeStat, error)
}
