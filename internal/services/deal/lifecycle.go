package deal

import (
	"context"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/services/calculator"
	"mcacrm/internal/services/offer"

	"github.com/shopspring/decimal"
)

// Open writes a new deal from d inside tx and marks the source offer
// funded. The caller owns the transaction and should run it through
// WithNumberRetry.
func Open(tx *repositories.Store, d Draft) (*models.Deal, error) {
	o, err := tx.Offers.LockByID(d.OfferID)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OfferStatusSelected {
		return nil, apperrors.ErrOfferNotSelected.WithMessage("offer %d is %s, not selected", o.ID, o.Status)
	}
	if o.MerchantID != d.MerchantID {
		return nil, apperrors.ErrOfferMerchantMismatch
	}
	if _, err := tx.Merchants.LockByID(d.MerchantID); err != nil {
		return nil, err
	}
	if d.BankAccountID != nil {
		account, err := tx.BankAccounts.GetByID(*d.BankAccountID, false)
		if err != nil {
			return nil, err
		}
		if account.MerchantID != d.MerchantID {
			return nil, apperrors.ErrBankAccountMismatch
		}
	}

	funding := models.Day(d.FundingDate)
	if d.FundingDate.IsZero() {
		funding = models.Today()
	}
	if d.FirstPaymentDate != nil && d.FirstPaymentDate.Before(funding) {
		return nil, apperrors.Validation("invalid deal dates",
			apperrors.FieldError{Field: "first_payment_date", Message: "must not be before funding_date"})
	}

	number, err := tx.Deals.NextDealNumber(time.Now().UTC().Year())
	if err != nil {
		return nil, err
	}

	periods := o.NumberOfPeriods
	if periods <= 0 {
		periods = 1
	}
	rtr := o.Advance.Mul(o.Factor).Round(2)
	maturity := calculator.MaturityDate(funding, o.PaymentFrequency, periods)
	netCash := o.Advance.Sub(o.UpfrontFees).Sub(d.TransferBalance).Round(2)

	deal := &models.Deal{
		MerchantID:           d.MerchantID,
		OfferID:              o.ID,
		BankAccountID:        d.BankAccountID,
		DealNumber:           number,
		IsRenewal:            d.IsRenewal,
		TotalTransferBalance: d.TransferBalance.Round(2),
		NetCashToMerchant:    &netCash,
		FundedAmount:         o.Advance,
		FactorRate:           o.Factor,
		RTRAmount:            rtr,
		PaymentAmount:        o.PaymentAmount,
		PaymentFrequency:     o.PaymentFrequency,
		NumberOfPayments:     periods,
		Status:               models.DealStatusActive,
		FundingDate:          funding,
		FirstPaymentDate:     dayPtr(d.FirstPaymentDate),
		MaturityDate:         &maturity,
		TotalPaid:            decimal.Zero,
		BalanceRemaining:     rtr,
		PaymentsRemaining:    periods,
		Notes:                d.Notes,
		CreatedBy:            d.CreatedBy,
	}
	if err := tx.Deals.Create(deal); err != nil {
		return nil, err
	}
	if _, err := offer.MarkFunded(tx, o.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return deal, nil
}

// WithNumberRetry runs fn in a transaction, starting over when the
// transaction loses a unique index race on the deal number.
func WithNumberRetry(ctx context.Context, store *repositories.Store, fn func(tx *repositories.Store) error) error {
	var err error
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		err = store.ExecuteInTransaction(ctx, fn)
		if err == nil || !repositories.IsDuplicateKey(err) {
			return err
		}
	}
	return apperrors.ErrDuplicateDealNumber.Wrap(err)
}

// Recompute derives the deal's running balance from its counted payments
// inside tx. A deal whose balance reaches zero completes; a completed deal
// whose balance rises again goes back to active.
func Recompute(tx *repositories.Store, dealID uint) (*models.Deal, error) {
	deal, err := tx.Deals.LockByID(dealID)
	if err != nil {
		return nil, err
	}
	payments, err := tx.Payments.ListCounted(dealID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	var last *time.Time
	for i := range payments {
		total = total.Add(payments[i].Amount)
		if last == nil || payments[i].Date.After(*last) {
			d := models.Day(payments[i].Date)
			last = &d
		}
	}

	deal.TotalPaid = total.Round(2)
	deal.BalanceRemaining = deal.RTRAmount.Sub(deal.TotalPaid)
	deal.PaymentsRemaining = deal.NumberOfPayments - len(payments)
	if deal.PaymentsRemaining < 0 {
		deal.PaymentsRemaining = 0
	}
	deal.LastPaymentDate = last

	switch {
	case !deal.BalanceRemaining.IsPositive() && deal.IsOpen():
		deal.Status = models.DealStatusCompleted
		deal.CompletedByPayments = true
		if deal.ActualCompletionDate == nil {
			today := models.Today()
			deal.ActualCompletionDate = &today
		}
	case deal.BalanceRemaining.IsPositive() && deal.Status == models.DealStatusCompleted && deal.CompletedByPayments:
		deal.Status = models.DealStatusActive
		deal.CompletedByPayments = false
		deal.ActualCompletionDate = nil
	}

	if err := tx.Deals.Update(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.Day(*t)
	return &d
}
