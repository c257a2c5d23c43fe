package repositories

import (
	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

// DealTotals are the portfolio wide sums behind the deal summary.
type DealTotals struct {
	Count            int64
	TotalFunded      decimal.Decimal
	TotalCollected   decimal.Decimal
	TotalOutstanding decimal.Decimal
	FactorSum        decimal.Decimal
}

// DealRepository defines the interface for deal persistence.
type DealRepository interface {
	Create(deal *models.Deal) error
	GetByID(id uint) (*models.Deal, error)
	LockByID(id uint) (*models.Deal, error)
	GetByNumber(number string) (*models.Deal, error)
	Update(deal *models.Deal) error
	List(opts ListOptions) ([]models.Deal, int64, error)
	ListByMerchant(merchantID uint) ([]models.Deal, error)
	ListActive() ([]models.Deal, error)
	ListRenewalsByMerchant(merchantID uint) ([]models.Deal, error)
	ListIDs() ([]uint, error)
	CountByStatus() (map[string]int64, error)
	Totals() (*DealTotals, error)
	// NextDealNumber reserves the next MCA-<year>-NNNN number. It must run
	// inside the transaction that inserts the deal.
	NextDealNumber(year int) (string, error)
}
