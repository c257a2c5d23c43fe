package offer

import (
	"context"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/services/calculator"
	"mcacrm/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	store   *repositories.Store
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new offer service
func NewService(store *repositories.Store, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, metrics: metrics.OrNoop(m), log: logger.Named("offer")}
}

func (s *service) Preview(in TermsInput) (*Quote, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	calc := inputFromTerms(in)
	res, err := calculator.Calculate(calc)
	if err != nil {
		return nil, err
	}
	return quote(calc, res), nil
}

func (s *service) Create(ctx context.Context, merchantID uint, in CreateInput) (_ *models.Offer, err error) {
	defer metrics.Observe(s.metrics, "offer.create", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	calc := inputFromTerms(in.TermsInput)
	res, err := calculator.Calculate(calc)
	if err != nil {
		return nil, err
	}

	o := &models.Offer{
		MerchantID:           merchantID,
		UpfrontFeePercentage: in.UpfrontFeePercentage,
		Renewal:              in.Renewal,
		TransferBalance:      in.TransferBalance,
		DealID:               normalizeDealID(in.DealID),
		Status:               models.OfferStatusDraft,
	}
	applyResult(o, calc, res)

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Merchants.GetByID(merchantID, false); err != nil {
			return err
		}
		if err := checkDealID(tx, o.DealID, 0); err != nil {
			return err
		}
		if in.Status != "" {
			if err := moveTo(tx, o, in.Status, time.Now().UTC()); err != nil {
				return err
			}
		}
		return dealIDConflict(tx.Offers.Create(o))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("offer created",
		zap.Uint("offer_id", o.ID),
		zap.Uint("merchant_id", merchantID),
		zap.String("rtr", o.RTR.StringFixed(2)),
		zap.String("term_basis", o.TermBasis))
	return o, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Offer, error) {
	return s.store.WithContext(ctx).Offers.GetByID(id, includeDeleted)
}

func (s *service) List(ctx context.Context, opts repositories.ListOptions) ([]models.Offer, int64, error) {
	return s.store.WithContext(ctx).Offers.List(opts)
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.Offer, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Merchants.GetByID(merchantID, true); err != nil {
		return nil, err
	}
	return store.Offers.ListByMerchant(merchantID, includeDeleted)
}

func (s *service) GetSelected(ctx context.Context, merchantID uint) (*models.Offer, error) {
	return s.store.WithContext(ctx).Offers.GetSelectedByMerchant(merchantID, 0)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.Offer, err error) {
	defer metrics.Observe(s.metrics, "offer.update", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var o *models.Offer
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if o, err = tx.Offers.LockByID(id); err != nil {
			return err
		}
		if o.Status == models.OfferStatusFunded && in.touchesTerms() {
			return apperrors.ErrInvalidOfferTransition.WithMessage("terms of a funded offer cannot change")
		}

		if in.touchesTerms() {
			calc := mergeTerms(o, in)
			res, err := calculator.Calculate(calc)
			if err != nil {
				return err
			}
			if in.UpfrontFeePercentage != nil {
				o.UpfrontFeePercentage = in.UpfrontFeePercentage
			}
			applyResult(o, calc, res)
		}
		if in.Renewal != nil {
			o.Renewal = *in.Renewal
		}
		if in.TransferBalance != nil {
			o.TransferBalance = in.TransferBalance
		}
		if in.DealID != nil {
			o.DealID = normalizeDealID(in.DealID)
			if err := checkDealID(tx, o.DealID, o.ID); err != nil {
				return err
			}
		}
		return dealIDConflict(tx.Offers.Update(o))
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Transition(ctx context.Context, id uint, status string) (_ *models.Offer, err error) {
	defer metrics.Observe(s.metrics, "offer.transition", time.Now(), &err)

	var o *models.Offer
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if o, err = tx.Offers.LockByID(id); err != nil {
			return err
		}
		from := o.Status
		if status == models.OfferStatusFunded && from != models.OfferStatusFunded {
			return apperrors.ErrInvalidOfferTransition.WithMessage(
				"offer %d is funded by opening a deal or renewal from it", o.ID)
		}
		if err := moveTo(tx, o, status, time.Now().UTC()); err != nil {
			return err
		}
		if from == o.Status {
			return nil
		}
		s.log.Info("offer status changed",
			zap.Uint("offer_id", o.ID),
			zap.String("from", from),
			zap.String("to", o.Status))
		return tx.Offers.Update(o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Delete soft deletes an offer that has not been selected or funded.
func (s *service) Delete(ctx context.Context, id uint, actor string) (err error) {
	defer metrics.Observe(s.metrics, "offer.delete", time.Now(), &err)

	return s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		o, err := tx.Offers.LockByID(id)
		if err != nil {
			return err
		}
		if o.Status == models.OfferStatusSelected || o.Status == models.OfferStatusFunded {
			return apperrors.ErrOfferLocked.WithMessage("cannot delete an offer in %s status", o.Status)
		}
		o.MarkDeleted(actor, time.Now().UTC())
		return tx.Offers.Update(o)
	})
}

func (s *service) Restore(ctx context.Context, id uint) (_ *models.Offer, err error) {
	defer metrics.Observe(s.metrics, "offer.restore", time.Now(), &err)

	var o *models.Offer
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if o, err = tx.Offers.GetByID(id, true); err != nil {
			return err
		}
		if !o.IsDeleted {
			return nil
		}
		o.Restore()
		return tx.Offers.Update(o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func normalizeDealID(id *string) *string {
	if id == nil {
		return nil
	}
	v := validation.CleanSpaces(*id)
	if v == "" {
		return nil
	}
	return &v
}

func checkDealID(tx *repositories.Store, dealID *string, selfID uint) error {
	if dealID == nil {
		return nil
	}
	taken, err := tx.Offers.DealIDTaken(*dealID, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrDuplicateDealID
	}
	return nil
}

func dealIDConflict(err error) error {
	if err != nil && repositories.IsDuplicateKey(err) {
		return apperrors.ErrDuplicateDealID.Wrap(err)
	}
	return err
}
