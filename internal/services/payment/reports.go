package payment

import (
	"context"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"

	"github.com/shopspring/decimal"
)

func (s *service) Summary(ctx context.Context, dealID uint) (*Summary, error) {
	payments, err := s.ListByDeal(ctx, dealID, false)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		DealID:        dealID,
		TotalPayments: len(payments),
		TotalAmount:   decimal.Zero,
		BouncedAmount: decimal.Zero,
		CountedAmount: decimal.Zero,
	}
	for i := range payments {
		p := &payments[i]
		summary.TotalAmount = summary.TotalAmount.Add(p.Amount)
		if p.Bounced {
			summary.TotalBounced++
			summary.BouncedAmount = summary.BouncedAmount.Add(p.Amount)
		} else {
			summary.CountedAmount = summary.CountedAmount.Add(p.Amount)
		}
		if summary.LastPaymentDate == nil || p.Date.After(*summary.LastPaymentDate) {
			d := models.Day(p.Date)
			summary.LastPaymentDate = &d
		}
	}
	if len(payments) > 0 {
		avg := summary.TotalAmount.Div(decimal.NewFromInt(int64(len(payments)))).Round(2)
		summary.AveragePayment = &avg
	}
	return summary, nil
}

func (s *service) StatsByType(ctx context.Context, dealID uint) ([]repositories.PaymentTypeStat, error) {
	store := s.store.WithContext(ctx)
	if dealID != 0 {
		if _, err := store.Deals.GetByID(dealID); err != nil {
			return nil, err
		}
	}
	return store.Payments.StatsByType(dealID)
}

// Bounced lists bounced payments across the book, or for one deal.
func (s *service) Bounced(ctx context.Context, dealID uint) ([]models.Payment, error) {
	return s.store.WithContext(ctx).Payments.ListBounced(dealID)
}

// Recent lists payments dated within the last days days, newest first.
func (s *service) Recent(ctx context.Context, days, limit int) ([]models.Payment, error) {
	if days <= 0 {
		days = defaultRecentDays
	}
	if days > maxRecentDays {
		days = maxRecentDays
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	since := models.Today().AddDate(0, 0, -days)
	return s.store.WithContext(ctx).Payments.ListSince(since, limit)
}
