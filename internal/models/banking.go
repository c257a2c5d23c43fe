package models

import "time"

const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
)

type BankAccount struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	MerchantID    uint      `gorm:"not null;index" json:"merchant_id"`
	AccountName   string    `gorm:"size:255;not null" json:"account_name"`
	AccountNumber string    `gorm:"size:4;not null" json:"account_number"`
	RoutingNumber string    `gorm:"size:9;not null" json:"routing_number"`
	BankName      string    `gorm:"size:255" json:"bank_name"`
	AccountType   string    `gorm:"size:20;not null;default:'checking'" json:"account_type"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	IsPrimary     bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	SoftDelete
}
