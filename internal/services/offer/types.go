package offer

import (
	"github.com/shopspring/decimal"
)

// TermsInput carries the operator supplied financial terms. At most one of
// PaymentAmount and NumberOfPeriods may be set.
type TermsInput struct {
	Advance              decimal.Decimal  `json:"advance" validate:"required,gt=0"`
	Factor               decimal.Decimal  `json:"factor" validate:"required,gt=0,lt=100"`
	UpfrontFees          *decimal.Decimal `json:"upfront_fees" validate:"omitempty,gte=0"`
	UpfrontFeePercentage *decimal.Decimal `json:"upfront_fee_percentage" validate:"omitempty,gte=0,lte=100"`
	PaymentFrequency     string           `json:"payment_frequency" validate:"omitempty,oneof=daily weekly bi-weekly monthly"`
	PaymentAmount        *decimal.Decimal `json:"payment_amount" validate:"omitempty,gt=0"`
	NumberOfPeriods      *int             `json:"number_of_periods" validate:"omitempty,gt=0"`
	SpecifiedPercentage  *decimal.Decimal `json:"specified_percentage" validate:"omitempty,gt=0,lte=100"`
}

type CreateInput struct {
	TermsInput
	Renewal         bool             `json:"renewal"`
	TransferBalance *decimal.Decimal `json:"transfer_balance" validate:"omitempty,gte=0"`
	DealID          *string          `json:"deal_id" validate:"omitempty,max=50"`
	// Status defaults to draft.
	Status string `json:"status" validate:"omitempty,oneof=draft sent selected"`
}

// UpdateInput is a partial update. Any financial field triggers a full
// recalculation from the stored terms merged with the patch.
type UpdateInput struct {
	Advance              *decimal.Decimal `json:"advance" validate:"omitempty,gt=0"`
	Factor               *decimal.Decimal `json:"factor" validate:"omitempty,gt=0,lt=100"`
	UpfrontFees          *decimal.Decimal `json:"upfront_fees" validate:"omitempty,gte=0"`
	UpfrontFeePercentage *decimal.Decimal `json:"upfront_fee_percentage" validate:"omitempty,gte=0,lte=100"`
	PaymentFrequency     *string          `json:"payment_frequency" validate:"omitempty,oneof=daily weekly bi-weekly monthly"`
	PaymentAmount        *decimal.Decimal `json:"payment_amount" validate:"omitempty,gt=0"`
	NumberOfPeriods      *int             `json:"number_of_periods" validate:"omitempty,gt=0"`
	SpecifiedPercentage  *decimal.Decimal `json:"specified_percentage" validate:"omitempty,gt=0,lte=100"`
	Renewal              *bool            `json:"renewal"`
	TransferBalance      *decimal.Decimal `json:"transfer_balance" validate:"omitempty,gte=0"`
	DealID               *string          `json:"deal_id" validate:"omitempty,max=50"`
}

func (u UpdateInput) touchesTerms() bool {
	return u.Advance != nil || u.Factor != nil || u.UpfrontFees != nil ||
		u.UpfrontFeePercentage != nil || u.PaymentFrequency != nil ||
		u.PaymentAmount != nil || u.NumberOfPeriods != nil || u.SpecifiedPercentage != nil
}

// Quote is the derived side of a set of terms, returned by Preview.
type Quote struct {
	RTR             decimal.Decimal `json:"rtr"`
	NetFunds        decimal.Decimal `json:"net_funds"`
	UpfrontFees     decimal.Decimal `json:"upfront_fees"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	NumberOfPeriods int             `json:"number_of_periods"`
	APR             decimal.Decimal `json:"apr"`
	TermBasis       string          `json:"term_basis"`
}
