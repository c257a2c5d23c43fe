/*
Package deal runs the funded side of the financing lifecycle.

A deal is opened from exactly one selected offer. Opening copies the
offer's terms, reserves the next MCA-<year>-NNNN number from the per-year
counter row, projects the maturity date and flips the offer to funded, all
inside one transaction:

	d, err := svc.Create(ctx, deal.CreateInput{
	    MerchantID:  merchantID,
	    OfferID:     offerID,
	    FundingDate: models.DateOf(time.Now()),
	}, actor)

Balances are never edited directly. Recompute derives total_paid,
balance_remaining, payments_remaining and last_payment_date from the
payments that count (not bounced, not deleted) and moves the deal to or
from completed. The payment ledger calls it inside its own transactions.

The portfolio summary is cached through SummaryCache and dropped on every
deal write.
*/
package deal
