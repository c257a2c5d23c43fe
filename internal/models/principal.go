package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Principal is a natural-person owner or guarantor of a merchant. The SSN
// is only ever stored sealed; SSNFingerprint is a keyed hash used for
// equality lookups.
type Principal struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	MerchantID          uint            `gorm:"not null;index" json:"merchant_id"`
	FirstName           string          `gorm:"size:100;not null" json:"first_name"`
	LastName            string          `gorm:"size:100;not null" json:"last_name"`
	OwnershipPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"ownership_percentage"`
	SSNCiphertext       []byte          `gorm:"column:ssn_ciphertext" json:"-"`
	SSNLast4            string          `gorm:"column:ssn_last4;size:4" json:"-"`
	SSNFingerprint      *string         `gorm:"column:ssn_fingerprint;size:64;index" json:"-"`
	DateOfBirth         *time.Time      `gorm:"type:date" json:"date_of_birth,omitempty"`
	HomeAddress         string          `gorm:"size:255" json:"home_address"`
	HomeCity            string          `gorm:"size:100" json:"home_city"`
	HomeState           string          `gorm:"size:2" json:"home_state"`
	HomeZip             string          `gorm:"size:10" json:"home_zip"`
	Phone               string          `gorm:"size:20" json:"phone"`
	Email               string          `gorm:"size:255" json:"email"`
	IsPrimaryContact    bool            `gorm:"not null;default:false" json:"is_primary_contact"`
	IsGuarantor         bool            `gorm:"not null" json:"is_guarantor"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	SoftDelete
}

// FullName joins first and last name.
func (p Principal) FullName() string {
	return p.FirstName + " " + p.LastName
}

// MaskedSSN renders the SSN for display, e.g. ***-**-6789.
func (p Principal) MaskedSSN() string {
	if p.SSNLast4 == "" {
		return ""
	}
	return "***-**-" + p.SSNLast4
}
