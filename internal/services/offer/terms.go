package offer

import (
	"mcacrm/internal/models"
	"mcacrm/internal/services/calculator"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// resolveFees returns the upfront fee amount, deriving it from the fee
// percentage when no explicit amount is given.
func resolveFees(advance decimal.Decimal, fees, pct *decimal.Decimal) decimal.Decimal {
	switch {
	case fees != nil:
		return fees.Round(2)
	case pct != nil:
		return advance.Mul(*pct).Div(hundred).Round(2)
	default:
		return decimal.Zero
	}
}

func inputFromTerms(in TermsInput) calculator.Input {
	freq := in.PaymentFrequency
	if freq == "" {
		freq = models.FrequencyDaily
	}
	return calculator.Input{
		Advance:             in.Advance,
		Factor:              in.Factor,
		UpfrontFees:         resolveFees(in.Advance, in.UpfrontFees, in.UpfrontFeePercentage),
		PaymentFrequency:    freq,
		PaymentAmount:       in.PaymentAmount,
		NumberOfPeriods:     in.NumberOfPeriods,
		SpecifiedPercentage: in.SpecifiedPercentage,
	}
}

// mergeTerms rebuilds the complete calculator input from the stored offer
// and a patch. The stored term basis decides which payment field is
// carried forward unless the patch names one itself.
func mergeTerms(o *models.Offer, patch UpdateInput) calculator.Input {
	in := calculator.Input{
		Advance:             o.Advance,
		Factor:              o.Factor,
		PaymentFrequency:    o.PaymentFrequency,
		SpecifiedPercentage: o.SpecifiedPercentage,
	}
	if patch.Advance != nil {
		in.Advance = *patch.Advance
	}
	if patch.Factor != nil {
		in.Factor = *patch.Factor
	}
	if patch.PaymentFrequency != nil {
		in.PaymentFrequency = *patch.PaymentFrequency
	}

	feePct := o.UpfrontFeePercentage
	if patch.UpfrontFeePercentage != nil {
		feePct = patch.UpfrontFeePercentage
	}
	switch {
	case patch.UpfrontFees != nil:
		in.UpfrontFees = patch.UpfrontFees.Round(2)
	case feePct != nil && (patch.UpfrontFeePercentage != nil || patch.Advance != nil):
		in.UpfrontFees = resolveFees(in.Advance, nil, feePct)
	default:
		in.UpfrontFees = o.UpfrontFees
	}

	switch {
	case patch.NumberOfPeriods != nil || patch.PaymentAmount != nil:
		in.NumberOfPeriods = patch.NumberOfPeriods
		in.PaymentAmount = patch.PaymentAmount
	case patch.SpecifiedPercentage != nil:
		in.SpecifiedPercentage = patch.SpecifiedPercentage
	default:
		switch o.TermBasis {
		case models.TermBasisPeriods:
			n := o.NumberOfPeriods
			in.NumberOfPeriods = &n
		case models.TermBasisAmount:
			amt := o.PaymentAmount
			in.PaymentAmount = &amt
		}
	}
	return in
}

func applyResult(o *models.Offer, in calculator.Input, res calculator.Result) {
	o.Advance = in.Advance.Round(2)
	o.Factor = in.Factor
	o.UpfrontFees = in.UpfrontFees
	o.PaymentFrequency = in.PaymentFrequency
	o.SpecifiedPercentage = in.SpecifiedPercentage
	o.RTR = res.RTR
	o.NetFunds = res.NetFunds
	o.PaymentAmount = res.PaymentAmount
	o.NumberOfPeriods = res.NumberOfPeriods
	o.APR = res.APR
	o.TermBasis = res.TermBasis
}

func quote(in calculator.Input, res calculator.Result) *Quote {
	return &Quote{
		RTR:             res.RTR,
		NetFunds:        res.NetFunds,
		UpfrontFees:     in.UpfrontFees,
		TotalCost:       res.TotalCost,
		PaymentAmount:   res.PaymentAmount,
		NumberOfPeriods: res.NumberOfPeriods,
		APR:             res.APR,
		TermBasis:       res.TermBasis,
	}
}
