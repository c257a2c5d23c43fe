// Package calculator holds the pure offer maths: RTR, net funds, the
// payment amount / number of periods pairing, APR and maturity dates.
package calculator

import (
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// daily rates with no known term annualise over 250 business days
	businessDays = decimal.NewFromInt(250)
)

// Input is the complete set of offer terms the derived fields depend on.
// At most one of PaymentAmount and NumberOfPeriods may be set.
type Input struct {
	Advance             decimal.Decimal
	Factor              decimal.Decimal
	UpfrontFees         decimal.Decimal
	PaymentFrequency    string
	PaymentAmount       *decimal.Decimal
	NumberOfPeriods     *int
	SpecifiedPercentage *decimal.Decimal
}

type Result struct {
	RTR             decimal.Decimal
	NetFunds        decimal.Decimal
	TotalCost       decimal.Decimal
	PaymentAmount   decimal.Decimal
	NumberOfPeriods int
	APR             decimal.Decimal
	TermBasis       string
}

// Calculate derives every computed offer field from in.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	rtr := in.Advance.Mul(in.Factor).Round(2)
	res := Result{
		RTR:       rtr,
		NetFunds:  in.Advance.Sub(in.UpfrontFees).Round(2),
		TotalCost: rtr.Sub(in.Advance).Round(2),
	}

	switch {
	case in.NumberOfPeriods != nil && *in.NumberOfPeriods > 0:
		res.NumberOfPeriods = *in.NumberOfPeriods
		res.PaymentAmount = rtr.Div(decimal.NewFromInt(int64(res.NumberOfPeriods))).Round(2)
		res.TermBasis = models.TermBasisPeriods
	case in.PaymentAmount != nil && in.PaymentAmount.IsPositive():
		res.PaymentAmount = in.PaymentAmount.Round(2)
		res.NumberOfPeriods = PeriodsFor(rtr, res.PaymentAmount)
		res.TermBasis = models.TermBasisAmount
	case in.SpecifiedPercentage != nil && in.SpecifiedPercentage.IsPositive():
		res.PaymentAmount = rtr.Mul(*in.SpecifiedPercentage).Div(hundred).Round(2)
		if !res.PaymentAmount.IsPositive() {
			return Result{}, apperrors.Validation("payment amount resolves to zero",
				apperrors.FieldError{Field: "specified_percentage", Message: "too small for this advance"})
		}
		res.NumberOfPeriods = PeriodsFor(rtr, res.PaymentAmount)
		res.TermBasis = models.TermBasisPercentage
	default:
		return Result{}, apperrors.Validation("payment terms are required",
			apperrors.FieldError{Field: "number_of_periods", Message: "provide number_of_periods, payment_amount or specified_percentage"})
	}

	if res.NumberOfPeriods <= 0 {
		return Result{}, apperrors.Validation("payment amount exceeds the amount to remit",
			apperrors.FieldError{Field: "payment_amount", Message: "must not exceed rtr"})
	}

	res.APR = APR(in.Advance, rtr, in.PaymentFrequency, res.NumberOfPeriods)
	return res, nil
}

func validate(in Input) error {
	var fields []apperrors.FieldError
	if !in.Advance.IsPositive() {
		fields = append(fields, apperrors.FieldError{Field: "advance", Message: "must be greater than 0"})
	}
	if !in.Factor.IsPositive() {
		fields = append(fields, apperrors.FieldError{Field: "factor", Message: "must be greater than 0"})
	}
	if in.UpfrontFees.IsNegative() {
		fields = append(fields, apperrors.FieldError{Field: "upfront_fees", Message: "must not be negative"})
	}
	if in.NumberOfPeriods != nil && *in.NumberOfPeriods < 0 {
		fields = append(fields, apperrors.FieldError{Field: "number_of_periods", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperrors.Validation("invalid offer terms", fields...)
	}
	if in.NumberOfPeriods != nil && in.PaymentAmount != nil {
		return apperrors.ErrAmbiguousTerm
	}
	return nil
}

// PeriodsFor is the truncated number of whole payments needed to remit rtr.
func PeriodsFor(rtr, payment decimal.Decimal) int {
	if !payment.IsPositive() {
		return 0
	}
	return int(rtr.Div(payment).Floor().IntPart())
}

// APR annualises the cost of the advance over the payment term, as a
// percentage rounded to cents. Unknown frequencies yield zero.
func APR(advance, rtr decimal.Decimal, frequency string, periods int) decimal.Decimal {
	if !advance.IsPositive() {
		return decimal.Zero
	}
	var perYear decimal.Decimal
	switch frequency {
	case models.FrequencyDaily:
		perYear = decimal.NewFromInt(365)
	case models.FrequencyWeekly:
		perYear = decimal.NewFromInt(52)
	case models.FrequencyBiWeekly:
		perYear = decimal.NewFromInt(26)
	case models.FrequencyMonthly:
		perYear = decimal.NewFromInt(12)
	default:
		return decimal.Zero
	}

	var annualisation decimal.Decimal
	switch {
	case periods > 0:
		annualisation = perYear.Div(decimal.NewFromInt(int64(periods)))
	case frequency == models.FrequencyDaily:
		annualisation = perYear.Div(businessDays)
	default:
		return decimal.Zero
	}

	cost := rtr.Sub(advance)
	return cost.Div(advance).Mul(annualisation).Mul(hundred).Round(2)
}

// MaturityDate projects the last payment date from the funding date.
// Daily schedules assume five payments per calendar week.
func MaturityDate(funding time.Time, frequency string, periods int) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		// periods/5 weeks, partial days dropped
		return funding.AddDate(0, 0, periods*7/5)
	case models.FrequencyWeekly:
		return funding.AddDate(0, 0, 7*periods)
	case models.FrequencyBiWeekly:
		return funding.AddDate(0, 0, 14*periods)
	case models.FrequencyMonthly:
		return funding.AddDate(0, 0, 30*periods)
	default:
		return funding.AddDate(0, 0, periods)
	}
}

// IsFrequency reports whether f is a supported payment frequency.
func IsFrequency(f string) bool {
	switch f {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyBiWeekly, models.FrequencyMonthly:
		return true
	}
	return false
}
