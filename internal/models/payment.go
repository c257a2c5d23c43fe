package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeACH        = "ACH"
	PaymentTypeWire       = "Wire"
	PaymentTypeCheck      = "Check"
	PaymentTypeCreditCard = "Credit Card"
	PaymentTypeDebitCard  = "Debit Card"
	PaymentTypeCash       = "Cash"
	PaymentTypeOther      = "Other"
)

var PaymentTypes = []string{
	PaymentTypeACH,
	PaymentTypeWire,
	PaymentTypeCheck,
	PaymentTypeCreditCard,
	PaymentTypeDebitCard,
	PaymentTypeCash,
	PaymentTypeOther,
}

// Payment is one cash movement against a deal. DealID, Date, Amount and
// Type are fixed once written.
type Payment struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	DealID    uint            `gorm:"not null;index" json:"deal_id"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type      string          `gorm:"size:20;not null" json:"type"`
	Bounced   bool            `gorm:"not null;default:false" json:"bounced"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	SoftDelete
}
