package models

import "time"

const (
	MerchantStatusLead                = "lead"
	MerchantStatusProspect            = "prospect"
	MerchantStatusApplicationSent     = "application_sent"
	MerchantStatusApplicationReceived = "application_received"
	MerchantStatusInUnderwriting      = "in_underwriting"
	MerchantStatusApproved            = "approved"
	MerchantStatusDeclined            = "declined"
	MerchantStatusFunded              = "funded"
	MerchantStatusRenewed             = "renewed"
	MerchantStatusChurned             = "churned"
	MerchantStatusBlacklisted         = "blacklisted"
	MerchantStatusClosed              = "closed"
)

// MerchantStatuses is the pipeline order used by stats reports.
var MerchantStatuses = []string{
	MerchantStatusLead,
	MerchantStatusProspect,
	MerchantStatusApplicationSent,
	MerchantStatusApplicationReceived,
	MerchantStatusInUnderwriting,
	MerchantStatusApproved,
	MerchantStatusDeclined,
	MerchantStatusFunded,
	MerchantStatusRenewed,
	MerchantStatusChurned,
	MerchantStatusBlacklisted,
	MerchantStatusClosed,
}

type Merchant struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	CompanyName   string     `gorm:"size:255;not null;index" json:"company_name"`
	Address       string     `gorm:"size:255" json:"address"`
	City          string     `gorm:"size:100" json:"city"`
	State         string     `gorm:"size:2" json:"state"`
	Zip           string     `gorm:"size:10" json:"zip"`
	FEIN          *string    `gorm:"column:fein;size:10;uniqueIndex" json:"fein,omitempty"`
	Phone         string     `gorm:"size:20" json:"phone"`
	EntityType    string     `gorm:"size:50" json:"entity_type"`
	SubmittedDate *time.Time `gorm:"type:date" json:"submitted_date,omitempty"`
	Email         string     `gorm:"size:255" json:"email"`
	ContactPerson string     `gorm:"size:255" json:"contact_person"`
	Status        string     `gorm:"size:50;not null;default:'lead';index" json:"status"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	SoftDelete

	Principals   []Principal   `gorm:"constraint:OnDelete:RESTRICT" json:"principals,omitempty"`
	BankAccounts []BankAccount `gorm:"constraint:OnDelete:RESTRICT" json:"bank_accounts,omitempty"`
	Offers       []Offer       `gorm:"constraint:OnDelete:RESTRICT" json:"offers,omitempty"`
	Deals        []Deal        `gorm:"constraint:OnDelete:RESTRICT" json:"deals,omitempty"`
}
