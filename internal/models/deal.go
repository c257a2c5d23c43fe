package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DealStatusActive    = "active"
	DealStatusCompleted = "completed"
	DealStatusDefaulted = "defaulted"
	DealStatusSuspended = "suspended"
	DealStatusCancelled = "cancelled"
	DealStatusRenewed   = "renewed"
)

// DealStatuses lists every deal status in report order.
var DealStatuses = []string{
	DealStatusActive,
	DealStatusCompleted,
	DealStatusDefaulted,
	DealStatusSuspended,
	DealStatusCancelled,
	DealStatusRenewed,
}

type Deal struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	MerchantID    uint   `gorm:"not null;index" json:"merchant_id"`
	OfferID       uint   `gorm:"not null;index" json:"offer_id"`
	BankAccountID *uint  `gorm:"index" json:"bank_account_id,omitempty"`
	DealNumber    string `gorm:"size:20;not null;uniqueIndex" json:"deal_number"`

	IsRenewal            bool             `gorm:"not null;default:false" json:"is_renewal"`
	TotalTransferBalance decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"total_transfer_balance"`
	NetCashToMerchant    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"net_cash_to_merchant,omitempty"`

	FundedAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"funded_amount"`
	FactorRate       decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"factor_rate"`
	RTRAmount        decimal.Decimal `gorm:"column:rtr_amount;type:numeric(12,2);not null" json:"rtr_amount"`
	PaymentAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"payment_amount"`
	PaymentFrequency string          `gorm:"size:20;not null" json:"payment_frequency"`
	NumberOfPayments int             `gorm:"not null" json:"number_of_payments"`

	Status               string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	FundingDate          time.Time  `gorm:"type:date;not null" json:"funding_date"`
	FirstPaymentDate     *time.Time `gorm:"type:date" json:"first_payment_date,omitempty"`
	MaturityDate         *time.Time `gorm:"type:date" json:"maturity_date,omitempty"`
	ActualCompletionDate *time.Time `gorm:"type:date" json:"actual_completion_date,omitempty"`
	// CompletedByPayments marks a completion derived from payment history.
	// Only those completions reopen when the balance rises again.
	CompletedByPayments bool `gorm:"not null;default:false" json:"completed_by_payments"`

	TotalPaid         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_paid"`
	BalanceRemaining  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_remaining"`
	PaymentsRemaining int             `gorm:"not null" json:"payments_remaining"`
	LastPaymentDate   *time.Time      `gorm:"type:date" json:"last_payment_date,omitempty"`

	InCollections    bool      `gorm:"not null;default:false" json:"in_collections"`
	CollectionsNotes string    `gorm:"type:text" json:"collections_notes"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedBy        string    `gorm:"size:100" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Payments []Payment `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// IsOpen reports whether payments can still complete the deal.
func (d Deal) IsOpen() bool {
	switch d.Status {
	case DealStatusActive, DealStatusSuspended, DealStatusDefaulted:
		return true
	}
	return false
}

// DealSequence is the per-year deal number counter row.
type DealSequence struct {
	Year      int `gorm:"primaryKey;autoIncrement:false"`
	LastValue int `gorm:"not null"`
}
