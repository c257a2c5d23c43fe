package deal

import (
	"time"

	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// numberAttempts bounds retries after losing a deal_number race.
	numberAttempts  = 3
	summaryCacheKey = "portfolio"
)

type CreateInput struct {
	MerchantID       uint         `json:"merchant_id" validate:"required"`
	OfferID          uint         `json:"offer_id" validate:"required"`
	BankAccountID    *uint        `json:"bank_account_id"`
	FundingDate      models.Date  `json:"funding_date"`
	FirstPaymentDate *models.Date `json:"first_payment_date"`
	Notes            string       `json:"notes"`
}

// UpdateInput covers the deal fields operators may change after funding.
// Financial terms are fixed at creation.
type UpdateInput struct {
	Status           *string          `json:"status" validate:"omitempty,oneof=active completed defaulted suspended cancelled renewed"`
	BankAccountID    *uint            `json:"bank_account_id"`
	PaymentAmount    *decimal.Decimal `json:"payment_amount" validate:"omitempty,gt=0"`
	InCollections    *bool            `json:"in_collections"`
	CollectionsNotes *string          `json:"collections_notes"`
	Notes            *string          `json:"notes"`
}

// Draft is everything needed to open a deal from an offer. Renewals fill
// in TransferBalance and IsRenewal.
type Draft struct {
	MerchantID       uint
	OfferID          uint
	BankAccountID    *uint
	FundingDate      time.Time
	FirstPaymentDate *time.Time
	TransferBalance  decimal.Decimal
	IsRenewal        bool
	Notes            string
	CreatedBy        string
}

type PortfolioSummary struct {
	TotalDeals        int64            `json:"total_deals"`
	ByStatus          map[string]int64 `json:"by_status"`
	TotalFunded       decimal.Decimal  `json:"total_funded"`
	TotalCollected    decimal.Decimal  `json:"total_collected"`
	TotalOutstanding  decimal.Decimal  `json:"total_outstanding"`
	AverageFactorRate decimal.Decimal  `json:"average_factor_rate"`
	AverageDealSize   decimal.Decimal  `json:"average_deal_size"`
	// CompletionRate is completed deals as a percentage of all deals.
	CompletionRate decimal.Decimal `json:"completion_rate"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
