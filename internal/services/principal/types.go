package principal

import (
	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

// Config holds the ownership ledger policy toggles.
type Config struct {
	// SSNDuplicateCheck rejects a second principal with the same SSN under
	// one merchant. The same SSN under different merchants is always allowed.
	SSNDuplicateCheck bool
}

type CreateInput struct {
	FirstName           string           `json:"first_name" validate:"required,max=100,personname"`
	LastName            string           `json:"last_name" validate:"required,max=100,personname"`
	OwnershipPercentage *decimal.Decimal `json:"ownership_percentage" validate:"omitempty,gte=0,lte=100"`
	SSN                 string           `json:"ssn" validate:"omitempty,ssn"`
	DateOfBirth         *models.Date     `json:"date_of_birth" validate:"omitempty,adult"`
	HomeAddress         string           `json:"home_address" validate:"max=255"`
	HomeCity            string           `json:"home_city" validate:"max=100"`
	HomeState           string           `json:"home_state" validate:"omitempty,usstate"`
	HomeZip             string           `json:"home_zip" validate:"omitempty,uszip"`
	Phone               string           `json:"phone" validate:"omitempty,usphone"`
	Email               string           `json:"email" validate:"omitempty,crmemail,nodisposable"`
	IsPrimaryContact    bool             `json:"is_primary_contact"`
	// IsGuarantor defaults to true.
	IsGuarantor *bool `json:"is_guarantor"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	FirstName           *string          `json:"first_name" validate:"omitempty,max=100,personname"`
	LastName            *string          `json:"last_name" validate:"omitempty,max=100,personname"`
	OwnershipPercentage *decimal.Decimal `json:"ownership_percentage" validate:"omitempty,gte=0,lte=100"`
	SSN                 *string          `json:"ssn" validate:"omitempty,ssn"`
	DateOfBirth         *models.Date     `json:"date_of_birth" validate:"omitempty,adult"`
	HomeAddress         *string          `json:"home_address" validate:"omitempty,max=255"`
	HomeCity            *string          `json:"home_city" validate:"omitempty,max=100"`
	HomeState           *string          `json:"home_state" validate:"omitempty,usstate"`
	HomeZip             *string          `json:"home_zip" validate:"omitempty,uszip"`
	Phone               *string          `json:"phone" validate:"omitempty,usphone"`
	Email               *string          `json:"email" validate:"omitempty,crmemail,nodisposable"`
	IsPrimaryContact    *bool            `json:"is_primary_contact"`
	IsGuarantor         *bool            `json:"is_guarantor"`
}

// Share is one principal's line in the ownership summary.
type Share struct {
	PrincipalID         uint            `json:"principal_id"`
	Name                string          `json:"name"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
	IsPrimaryContact    bool            `json:"is_primary_contact"`
	IsGuarantor         bool            `json:"is_guarantor"`
	MaskedSSN           string          `json:"ssn,omitempty"`
}

type OwnershipSummary struct {
	MerchantID     uint            `json:"merchant_id"`
	Principals     []Share         `json:"principals"`
	TotalOwnership decimal.Decimal `json:"total_ownership"`
	Unallocated    decimal.Decimal `json:"unallocated"`
	FullyAllocated bool            `json:"fully_allocated"`
	PrimaryContact *Share          `json:"primary_contact,omitempty"`
	GuarantorCount int             `json:"guarantor_count"`
}
