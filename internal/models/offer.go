package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

const (
	OfferStatusDraft     = "draft"
	OfferStatusSent      = "sent"
	OfferStatusSelected  = "selected"
	OfferStatusFunded    = "funded"
	OfferStatusDeclined  = "declined"
	OfferStatusWithdrawn = "withdrawn"
)

// Term bases record which of the payment fields was operator input.
const (
	TermBasisPeriods    = "periods"
	TermBasisAmount     = "amount"
	TermBasisPercentage = "percentage"
)

type Offer struct {
	ID                   uint             `gorm:"primarykey" json:"id"`
	MerchantID           uint             `gorm:"not null;index" json:"merchant_id"`
	Advance              decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"advance"`
	Factor               decimal.Decimal  `gorm:"type:numeric(6,4);not null" json:"factor"`
	UpfrontFees          decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"upfront_fees"`
	UpfrontFeePercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"upfront_fee_percentage,omitempty"`
	SpecifiedPercentage  *decimal.Decimal `gorm:"type:numeric(5,2)" json:"specified_percentage,omitempty"`
	PaymentFrequency     string           `gorm:"size:20;not null;default:'daily'" json:"payment_frequency"`
	Renewal              bool             `gorm:"not null;default:false" json:"renewal"`
	TransferBalance      *decimal.Decimal `gorm:"type:numeric(12,2)" json:"transfer_balance,omitempty"`
	DealID               *string          `gorm:"size:50;uniqueIndex" json:"deal_id,omitempty"`
	TermBasis            string           `gorm:"size:20;not null" json:"term_basis"`

	RTR             decimal.Decimal `gorm:"column:rtr;type:numeric(12,2);not null" json:"rtr"`
	NetFunds        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"net_funds"`
	PaymentAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"payment_amount"`
	NumberOfPeriods int             `gorm:"not null" json:"number_of_periods"`
	APR             decimal.Decimal `gorm:"column:apr;type:numeric(8,2);not null" json:"apr"`

	Status     string     `gorm:"size:20;not null;default:'draft';index" json:"status"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	SelectedAt *time.Time `json:"selected_at,omitempty"`
	FundedAt   *time.Time `json:"funded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SoftDelete
}
