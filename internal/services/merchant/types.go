package merchant

import (
	"mcacrm/internal/models"
)

// Config holds the merchant registry policy toggles.
type Config struct {
	// FEINDuplicateCheck rejects a duplicate FEIN before insert. The unique
	// index rejects it regardless.
	FEINDuplicateCheck bool
}

type CreateInput struct {
	CompanyName   string       `json:"company_name" validate:"required,max=255"`
	Address       string       `json:"address" validate:"max=255"`
	City          string       `json:"city" validate:"max=100"`
	State         string       `json:"state" validate:"omitempty,usstate"`
	Zip           string       `json:"zip" validate:"omitempty,uszip"`
	FEIN          string       `json:"fein" validate:"omitempty,fein"`
	Phone         string       `json:"phone" validate:"omitempty,usphone"`
	EntityType    string       `json:"entity_type" validate:"omitempty,entitytype"`
	SubmittedDate *models.Date `json:"submitted_date" validate:"omitempty,notfuture,since2000"`
	Email         string       `json:"email" validate:"omitempty,crmemail,nodisposable"`
	ContactPerson string       `json:"contact_person" validate:"omitempty,contactname"`
	Status        string       `json:"status" validate:"omitempty,oneof=lead prospect application_sent application_received in_underwriting approved declined funded renewed churned blacklisted closed"`
	Notes         string       `json:"notes"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	CompanyName   *string      `json:"company_name" validate:"omitempty,min=1,max=255"`
	Address       *string      `json:"address" validate:"omitempty,max=255"`
	City          *string      `json:"city" validate:"omitempty,max=100"`
	State         *string      `json:"state" validate:"omitempty,usstate"`
	Zip           *string      `json:"zip" validate:"omitempty,uszip"`
	FEIN          *string      `json:"fein" validate:"omitempty,len=0|fein"`
	Phone         *string      `json:"phone" validate:"omitempty,usphone"`
	EntityType    *string      `json:"entity_type" validate:"omitempty,entitytype"`
	SubmittedDate *models.Date `json:"submitted_date" validate:"omitempty,notfuture,since2000"`
	Email         *string      `json:"email" validate:"omitempty,crmemail,nodisposable"`
	ContactPerson *string      `json:"contact_person" validate:"omitempty,contactname"`
	Status        *string      `json:"status" validate:"omitempty,oneof=lead prospect application_sent application_received in_underwriting approved declined funded renewed churned blacklisted closed"`
	Notes         *string      `json:"notes"`
}

// Stats counts non-deleted merchants per pipeline status.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}
