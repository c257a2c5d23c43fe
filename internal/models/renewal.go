package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RenewalStatusActive    = "active"
	RenewalStatusReversed  = "reversed"
	RenewalStatusCancelled = "cancelled"
)

// RenewalInfo records the balance taken over from one old deal.
type RenewalInfo struct {
	ID                 uint             `gorm:"primarykey" json:"id"`
	OldDealID          uint             `gorm:"not null;index" json:"old_deal_id"`
	OldDeal            *Deal            `gorm:"foreignKey:OldDealID" json:"-"`
	TransferBalance    decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"transfer_balance"`
	FinalPaymentAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"final_payment_amount,omitempty"`
	PayoffDate         *time.Time       `gorm:"type:date" json:"payoff_date,omitempty"`
	Notes              string           `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time        `json:"created_at"`
}

// DealRenewalJunction links a renewal deal to each RenewalInfo it consumed.
type DealRenewalJunction struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	DealID        uint         `gorm:"not null;index" json:"deal_id"`
	Deal          *Deal        `gorm:"foreignKey:DealID" json:"-"`
	RenewalInfoID uint         `gorm:"not null;uniqueIndex" json:"renewal_info_id"`
	RenewalInfo   *RenewalInfo `gorm:"foreignKey:RenewalInfoID" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
}

// DealRenewalRelationship is the old to new edge of a renewal.
type DealRenewalRelationship struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	OldDealID     uint         `gorm:"not null;index" json:"old_deal_id"`
	OldDeal       *Deal        `gorm:"foreignKey:OldDealID" json:"-"`
	NewDealID     uint         `gorm:"not null;index" json:"new_deal_id"`
	NewDeal       *Deal        `gorm:"foreignKey:NewDealID" json:"-"`
	RenewalInfoID uint         `gorm:"not null;uniqueIndex" json:"renewal_info_id"`
	RenewalInfo   *RenewalInfo `gorm:"foreignKey:RenewalInfoID" json:"-"`
	Status        string       `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	SoftDelete
}
