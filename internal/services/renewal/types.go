package renewal

import (
	"time"

	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

// OldDeal is one deal being paid off by a renewal.
type OldDeal struct {
	OldDealID       uint            `json:"old_deal_id" validate:"required"`
	TransferBalance decimal.Decimal `json:"transfer_balance" validate:"gt=0"`
	PayoffDate      *models.Date    `json:"payoff_date"`
	Notes           string          `json:"notes"`
}

type CreateInput struct {
	MerchantID       uint         `json:"merchant_id" validate:"required"`
	OfferID          uint         `json:"offer_id" validate:"required"`
	BankAccountID    *uint        `json:"bank_account_id"`
	FundingDate      models.Date  `json:"funding_date"`
	FirstPaymentDate *models.Date `json:"first_payment_date"`
	OldDeals         []OldDeal    `json:"old_deals" validate:"dive"`
	Notes            string       `json:"notes"`
}

// TotalTransfer sums the transfer balances of every old deal.
func (in CreateInput) TotalTransfer() decimal.Decimal {
	total := decimal.Zero
	for _, od := range in.OldDeals {
		total = total.Add(od.TransferBalance)
	}
	return total.Round(2)
}

type InfoUpdateInput struct {
	TransferBalance    *decimal.Decimal `json:"transfer_balance" validate:"omitempty,gt=0"`
	FinalPaymentAmount *decimal.Decimal `json:"final_payment_amount" validate:"omitempty,gte=0"`
	PayoffDate         *models.Date     `json:"payoff_date"`
	Notes              *string          `json:"notes"`
}

// Link is one neighbour in a renewal chain.
type Link struct {
	DealID          uint             `json:"deal_id"`
	DealNumber      string           `json:"deal_number"`
	TransferBalance *decimal.Decimal `json:"transfer_balance,omitempty"`
	PayoffDate      *time.Time       `json:"payoff_date,omitempty"`
	RenewalDate     *time.Time       `json:"renewal_date,omitempty"`
}

// Chain describes both sides of a deal's renewal history. A renewal deal
// that was itself renewed has both RenewedInto and RenewedFrom set.
type Chain struct {
	DealID      uint   `json:"deal_id"`
	DealNumber  string `json:"deal_number"`
	WasRenewed  bool   `json:"was_renewed"`
	RenewedInto *Link  `json:"renewed_into"`
	IsRenewal   bool   `json:"is_renewal"`
	RenewedFrom []Link `json:"renewed_from"`
}

type Summary struct {
	DealID               uint            `json:"deal_id"`
	DealNumber           string          `json:"deal_number"`
	IsRenewal            bool            `json:"is_renewal"`
	FundedAmount         decimal.Decimal `json:"funded_amount"`
	TotalTransferBalance decimal.Decimal `json:"total_transfer_balance"`
	NetCashToMerchant    decimal.Decimal `json:"net_cash_to_merchant"`
	OldDealsCount        int             `json:"old_deals_count"`
	OldDealIDs           []uint          `json:"old_deal_ids"`
	CreatedAt            time.Time       `json:"created_at"`
}
