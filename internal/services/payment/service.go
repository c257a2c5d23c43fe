package payment

import (
	"context"
	"strings"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/services/deal"
	"mcacrm/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	store   *repositories.Store
	deals   SummaryInvalidator
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new payment service. deals may be nil when no
// portfolio cache is in use.
func NewService(store *repositories.Store, deals SummaryInvalidator, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{
		store:   store,
		deals:   deals,
		metrics: metrics.OrNoop(m),
		log:     logger.Named("payment"),
	}
}

func (s *service) Record(ctx context.Context, in RecordInput) (_ *models.Payment, err error) {
	defer metrics.Observe(s.metrics, "payment.record", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	v := validation.New()
	v.Check(!in.Date.IsZero(), "date", "must not be empty")
	v.NotFuture("date", in.Date.Time)
	v.OneOf("type", in.Type, models.PaymentTypes)
	if err := v.Err("invalid payment"); err != nil {
		return nil, err
	}

	p := &models.Payment{
		DealID:  in.DealID,
		Date:    models.Day(in.Date.Time),
		Amount:  in.Amount.Round(2),
		Type:    in.Type,
		Bounced: in.Bounced,
		Notes:   strings.TrimSpace(in.Notes),
	}
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Deals.LockByID(in.DealID); err != nil {
			return err
		}
		if err := tx.Payments.Create(p); err != nil {
			return err
		}
		_, err := deal.Recompute(tx, in.DealID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	if !p.Bounced {
		f, _ := p.Amount.Float64()
		s.metrics.RecordAmount("collected", f)
	}
	s.log.Info("payment recorded",
		zap.Uint("payment_id", p.ID),
		zap.Uint("deal_id", p.DealID),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.Bool("bounced", p.Bounced))
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Payment, error) {
	return s.store.WithContext(ctx).Payments.GetByID(id, includeDeleted)
}

func (s *service) List(ctx context.Context, opts repositories.ListOptions) ([]models.Payment, int64, error) {
	return s.store.WithContext(ctx).Payments.List(opts)
}

func (s *service) ListByDeal(ctx context.Context, dealID uint, includeDeleted bool) ([]models.Payment, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Deals.GetByID(dealID); err != nil {
		return nil, err
	}
	return store.Payments.ListByDeal(dealID, includeDeleted)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.Payment, err error) {
	defer metrics.Observe(s.metrics, "payment.update", time.Now(), &err)

	return s.mutate(ctx, id, func(p *models.Payment) {
		if in.Bounced != nil {
			p.Bounced = *in.Bounced
		}
		if in.Notes != nil {
			p.Notes = strings.TrimSpace(*in.Notes)
		}
	})
}

// MarkBounced sets the bounced flag and appends any notes on a new line.
func (s *service) MarkBounced(ctx context.Context, id uint, in BounceInput) (_ *models.Payment, err error) {
	defer metrics.Observe(s.metrics, "payment.bounce", time.Now(), &err)

	p, err := s.mutate(ctx, id, func(p *models.Payment) {
		p.Bounced = in.Bounced
		if note := strings.TrimSpace(in.Notes); note != "" {
			if p.Notes == "" {
				p.Notes = note
			} else {
				p.Notes += "\n" + note
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if p.Bounced {
		f, _ := p.Amount.Float64()
		s.metrics.RecordAmount("bounced", f)
		s.log.Warn("payment bounced", zap.Uint("payment_id", p.ID), zap.Uint("deal_id", p.DealID))
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint, actor string) (err error) {
	defer metrics.Observe(s.metrics, "payment.delete", time.Now(), &err)

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		p, err := tx.Payments.GetByID(id, false)
		if err != nil {
			return err
		}
		if _, err := tx.Deals.LockByID(p.DealID); err != nil {
			return err
		}
		p.MarkDeleted(actor, time.Now().UTC())
		if err := tx.Payments.Update(p); err != nil {
			return err
		}
		_, err = deal.Recompute(tx, p.DealID)
		return err
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("payment deleted", zap.Uint("payment_id", id), zap.String("deleted_by", actor))
	return nil
}

func (s *service) Restore(ctx context.Context, id uint) (_ *models.Payment, err error) {
	defer metrics.Observe(s.metrics, "payment.restore", time.Now(), &err)

	var p *models.Payment
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if p, err = tx.Payments.GetByID(id, true); err != nil {
			return err
		}
		if !p.IsDeleted {
			return nil
		}
		if _, err := tx.Deals.LockByID(p.DealID); err != nil {
			return err
		}
		p.Restore()
		if err := tx.Payments.Update(p); err != nil {
			return err
		}
		_, err = deal.Recompute(tx, p.DealID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// mutate applies fn to a live payment and recomputes its deal.
func (s *service) mutate(ctx context.Context, id uint, fn func(p *models.Payment)) (*models.Payment, error) {
	var p *models.Payment
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if p, err = tx.Payments.GetByID(id, true); err != nil {
			return err
		}
		if p.IsDeleted {
			return apperrors.ErrPaymentDeleted
		}
		if _, err := tx.Deals.LockByID(p.DealID); err != nil {
			return err
		}
		fn(p)
		if err := tx.Payments.Update(p); err != nil {
			return err
		}
		_, err = deal.Recompute(tx, p.DealID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.deals != nil {
		s.deals.InvalidateSummary(ctx)
	}
}
