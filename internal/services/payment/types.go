package payment

import (
	"time"

	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

const (
	defaultRecentDays  = 7
	maxRecentDays      = 90
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

type RecordInput struct {
	DealID  uint            `json:"deal_id" validate:"required"`
	Date    models.Date     `json:"date"`
	Amount  decimal.Decimal `json:"amount" validate:"gt=0"`
	Type    string          `json:"type"`
	Bounced bool            `json:"bounced"`
	Notes   string          `json:"notes"`
}

// UpdateInput only touches the mutable fields. Date, amount and type
// are fixed once a payment is recorded.
type UpdateInput struct {
	Bounced *bool   `json:"bounced"`
	Notes   *string `json:"notes"`
}

type BounceInput struct {
	Bounced bool   `json:"bounced"`
	Notes   string `json:"notes"`
}

// Summary aggregates every non-deleted payment of a deal, bounced ones
// included in the count and total.
type Summary struct {
	DealID          uint             `json:"deal_id"`
	TotalPayments   int              `json:"total_payments"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	TotalBounced    int              `json:"total_bounced"`
	BouncedAmount   decimal.Decimal  `json:"bounced_amount"`
	CountedAmount   decimal.Decimal  `json:"counted_amount"`
	AveragePayment  *decimal.Decimal `json:"average_payment"`
	LastPaymentDate *time.Time       `json:"last_payment_date"`
}
