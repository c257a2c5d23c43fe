package deal

import (
	"context"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type service struct {
	store   *repositories.Store
	cache   SummaryCache
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new deal service. A nil cache disables summary
// caching.
func NewService(store *repositories.Store, cache SummaryCache, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		cache = NoopSummaryCache{}
	}
	return &service{
		store:   store,
		cache:   cache,
		metrics: metrics.OrNoop(m),
		log:     logger.Named("deal"),
	}
}

func (s *service) Create(ctx context.Context, in CreateInput, actor string) (_ *models.Deal, err error) {
	defer metrics.Observe(s.metrics, "deal.create", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	draft := Draft{
		MerchantID:       in.MerchantID,
		OfferID:          in.OfferID,
		BankAccountID:    in.BankAccountID,
		FundingDate:      in.FundingDate.Time,
		FirstPaymentDate: in.FirstPaymentDate.TimePtr(),
		Notes:            in.Notes,
		CreatedBy:        actor,
	}

	var deal *models.Deal
	err = WithNumberRetry(ctx, s.store, func(tx *repositories.Store) error {
		var err error
		deal, err = Open(tx, draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateSummary(ctx)
	f, _ := deal.FundedAmount.Float64()
	s.metrics.RecordAmount("funded", f)
	s.log.Info("deal created",
		zap.Uint("deal_id", deal.ID),
		zap.String("deal_number", deal.DealNumber),
		zap.Uint("offer_id", deal.OfferID),
		zap.String("rtr_amount", deal.RTRAmount.StringFixed(2)))
	return deal, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Deal, error) {
	return s.store.WithContext(ctx).Deals.GetByID(id)
}

func (s *service) GetByNumber(ctx context.Context, number string) (*models.Deal, error) {
	return s.store.WithContext(ctx).Deals.GetByNumber(number)
}

func (s *service) List(ctx context.Context, opts repositories.ListOptions) ([]models.Deal, int64, error) {
	return s.store.WithContext(ctx).Deals.List(opts)
}

func (s *service) ListActive(ctx context.Context) ([]models.Deal, error) {
	return s.store.WithContext(ctx).Deals.ListActive()
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint) ([]models.Deal, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Merchants.GetByID(merchantID, true); err != nil {
		return nil, err
	}
	return store.Deals.ListByMerchant(merchantID)
}

func (s *service) ListRenewalsByMerchant(ctx context.Context, merchantID uint) ([]models.Deal, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Merchants.GetByID(merchantID, true); err != nil {
		return nil, err
	}
	return store.Deals.ListRenewalsByMerchant(merchantID)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.Deal, err error) {
	defer metrics.Observe(s.metrics, "deal.update", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var deal *models.Deal
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if deal, err = tx.Deals.LockByID(id); err != nil {
			return err
		}
		if in.BankAccountID != nil {
			account, err := tx.BankAccounts.GetByID(*in.BankAccountID, false)
			if err != nil {
				return err
			}
			if account.MerchantID != deal.MerchantID {
				return apperrors.ErrBankAccountMismatch
			}
			deal.BankAccountID = in.BankAccountID
		}
		if in.Status != nil && *in.Status != deal.Status {
			if err := checkManualStatus(deal.Status, *in.Status); err != nil {
				return err
			}
			deal.Status = *in.Status
			deal.CompletedByPayments = false
			if deal.Status == models.DealStatusCompleted && deal.ActualCompletionDate == nil {
				today := models.Today()
				deal.ActualCompletionDate = &today
			}
		}
		if in.PaymentAmount != nil {
			deal.PaymentAmount = in.PaymentAmount.Round(2)
		}
		if in.InCollections != nil {
			deal.InCollections = *in.InCollections
		}
		if in.CollectionsNotes != nil {
			deal.CollectionsNotes = *in.CollectionsNotes
		}
		if in.Notes != nil {
			deal.Notes = *in.Notes
		}
		return tx.Deals.Update(deal)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateSummary(ctx)
	return deal, nil
}

// checkManualStatus guards the operator status edit. Renewed is owned by the
// renewal engine and cancelled by Cancel, which needs the funding permission.
func checkManualStatus(from, to string) error {
	switch {
	case from == models.DealStatusRenewed:
		return apperrors.ErrInvalidDealTransition.WithMessage(
			"deal was renewed; reverse the renewal to reopen it")
	case to == models.DealStatusRenewed:
		return apperrors.ErrInvalidDealTransition.WithMessage(
			"deals are marked renewed by creating a renewal")
	case to == models.DealStatusCancelled:
		return apperrors.ErrInvalidDealTransition.WithMessage(
			"use deal cancellation to cancel a deal")
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, id uint) (_ *models.Deal, err error) {
	defer metrics.Observe(s.metrics, "deal.cancel", time.Now(), &err)

	var deal *models.Deal
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if deal, err = tx.Deals.LockByID(id); err != nil {
			return err
		}
		if deal.Status == models.DealStatusCancelled {
			return nil
		}
		if deal.Status == models.DealStatusRenewed {
			return apperrors.ErrInvalidDealTransition.WithMessage(
				"deal was renewed; reverse the renewal before cancelling it")
		}
		deal.Status = models.DealStatusCancelled
		return tx.Deals.Update(deal)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateSummary(ctx)
	s.log.Info("deal cancelled", zap.Uint("deal_id", id))
	return deal, nil
}

func (s *service) RecomputeBalance(ctx context.Context, id uint) (_ *models.Deal, err error) {
	defer metrics.Observe(s.metrics, "deal.recompute", time.Now(), &err)

	var deal *models.Deal
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		deal, err = Recompute(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateSummary(ctx)
	return deal, nil
}

func (s *service) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.store.WithContext(ctx).Deals.ListIDs()
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
			_, err := Recompute(tx, id)
			return err
		})
		if err != nil {
			return i, err
		}
	}
	s.InvalidateSummary(ctx)
	s.log.Info("deal balances recomputed", zap.Int("deals", len(ids)))
	return len(ids), nil
}

// Summary serves the portfolio summary from cache when present. Cache
// failures are logged and fall through to the database.
func (s *service) Summary(ctx context.Context) (*PortfolioSummary, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("summary cache read failed", zap.Error(err))
	}
	if ok {
		s.metrics.RecordCacheHit(summaryCacheKey)
		return cached, nil
	}
	s.metrics.RecordCacheMiss(summaryCacheKey)

	summary, err := s.computeSummary(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warn("summary cache write failed", zap.Error(err))
	}
	return summary, nil
}

func (s *service) InvalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

func (s *service) computeSummary(ctx context.Context) (*PortfolioSummary, error) {
	store := s.store.WithContext(ctx)
	totals, err := store.Deals.Totals()
	if err != nil {
		return nil, err
	}
	counts, err := store.Deals.CountByStatus()
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		TotalDeals:        totals.Count,
		ByStatus:          make(map[string]int64, len(models.DealStatuses)),
		TotalFunded:       totals.TotalFunded.Round(2),
		TotalCollected:    totals.TotalCollected.Round(2),
		TotalOutstanding:  totals.TotalOutstanding.Round(2),
		AverageFactorRate: decimal.Zero,
		AverageDealSize:   decimal.Zero,
		CompletionRate:    decimal.Zero,
		GeneratedAt:       time.Now().UTC(),
	}
	for _, status := range models.DealStatuses {
		summary.ByStatus[status] = counts[status]
	}
	if totals.Count > 0 {
		n := decimal.NewFromInt(totals.Count)
		summary.AverageFactorRate = totals.FactorSum.Div(n).Round(4)
		summary.AverageDealSize = totals.TotalFunded.Div(n).Round(2)
		summary.CompletionRate = decimal.NewFromInt(counts[models.DealStatusCompleted]).
			Div(n).Mul(hundred).Round(2)
	}
	return summary, nil
}
