package merchant

import (
	"context"
	"errors"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	store   *repositories.Store
	config  Config
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new merchant service
func NewService(store *repositories.Store, config Config, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{
		store:   store,
		config:  config,
		metrics: metrics.OrNoop(m),
		log:     logger.Named("merchant"),
	}
}

func (s *service) Create(ctx context.Context, in CreateInput) (_ *models.Merchant, err error) {
	defer metrics.Observe(s.metrics, "merchant.create", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	m := &models.Merchant{
		CompanyName:   validation.CleanSpaces(in.CompanyName),
		Address:       validation.CleanSpaces(in.Address),
		City:          validation.CleanSpaces(in.City),
		State:         validation.NormalizeState(in.State),
		Zip:           validation.NormalizeZip(in.Zip),
		Phone:         validation.NormalizeUSPhone(in.Phone),
		EntityType:    in.EntityType,
		SubmittedDate: in.SubmittedDate.TimePtr(),
		Email:         validation.NormalizeEmail(in.Email),
		ContactPerson: validation.CleanSpaces(in.ContactPerson),
		Status:        in.Status,
		Notes:         in.Notes,
	}
	if m.Status == "" {
		m.Status = models.MerchantStatusLead
	}
	if in.FEIN != "" {
		fein := validation.NormalizeFEIN(in.FEIN)
		m.FEIN = &fein
	}

	store := s.store.WithContext(ctx)
	if err := s.checkFEIN(store, m.FEIN, 0); err != nil {
		return nil, err
	}
	if err := store.Merchants.Create(m); err != nil {
		return nil, feinConflict(err)
	}

	s.log.Info("merchant created", zap.Uint("merchant_id", m.ID), zap.String("status", m.Status))
	return m, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Merchant, error) {
	return s.store.WithContext(ctx).Merchants.GetByID(id, includeDeleted)
}

func (s *service) List(ctx context.Context, opts repositories.ListOptions) ([]models.Merchant, int64, error) {
	return s.store.WithContext(ctx).Merchants.List(opts)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.Merchant, err error) {
	defer metrics.Observe(s.metrics, "merchant.update", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var m *models.Merchant
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		m, err = tx.Merchants.LockByID(id)
		if err != nil {
			return err
		}
		apply(m, in)
		if err := s.checkFEIN(tx, m.FEIN, m.ID); err != nil {
			return err
		}
		return feinConflict(tx.Merchants.Update(m))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete soft deletes the merchant. Children are left untouched.
func (s *service) Delete(ctx context.Context, id uint, actor string) (err error) {
	defer metrics.Observe(s.metrics, "merchant.delete", time.Now(), &err)

	return s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		m, err := tx.Merchants.LockByID(id)
		if err != nil {
			return err
		}
		m.MarkDeleted(actor, time.Now().UTC())
		if err := tx.Merchants.Update(m); err != nil {
			return err
		}
		s.log.Info("merchant deleted", zap.Uint("merchant_id", id), zap.String("actor", actor))
		return nil
	})
}

func (s *service) Restore(ctx context.Context, id uint) (_ *models.Merchant, err error) {
	defer metrics.Observe(s.metrics, "merchant.restore", time.Now(), &err)

	var m *models.Merchant
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		m, err = tx.Merchants.GetByID(id, true)
		if err != nil {
			return err
		}
		if !m.IsDeleted {
			return nil
		}
		m.Restore()
		return feinConflict(tx.Merchants.Update(m))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.store.WithContext(ctx).Merchants.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats := &Stats{ByStatus: make(map[string]int64, len(models.MerchantStatuses))}
	for _, status := range models.MerchantStatuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}
	return stats, nil
}

func (s *service) checkFEIN(store *repositories.Store, fein *string, selfID uint) error {
	if !s.config.FEINDuplicateCheck || fein == nil {
		return nil
	}
	existing, err := store.Merchants.GetByFEIN(*fein)
	if errors.Is(err, apperrors.ErrMerchantNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperrors.ErrDuplicateFEIN
	}
	return nil
}

// feinConflict reports a lost race on the FEIN unique index as a
// duplicate FEIN.
func feinConflict(err error) error {
	if err != nil && repositories.IsDuplicateKey(err) {
		return apperrors.ErrDuplicateFEIN.Wrap(err)
	}
	return err
}

func apply(m *models.Merchant, in UpdateInput) {
	if in.CompanyName != nil {
		m.CompanyName = validation.CleanSpaces(*in.CompanyName)
	}
	if in.Address != nil {
		m.Address = validation.CleanSpaces(*in.Address)
	}
	if in.City != nil {
		m.City = validation.CleanSpaces(*in.City)
	}
	if in.State != nil {
		m.State = validation.NormalizeState(*in.State)
	}
	if in.Zip != nil {
		m.Zip = validation.NormalizeZip(*in.Zip)
	}
	if in.FEIN != nil {
		if *in.FEIN == "" {
			m.FEIN = nil
		} else {
			fein := validation.NormalizeFEIN(*in.FEIN)
			m.FEIN = &fein
		}
	}
	if in.Phone != nil {
		m.Phone = validation.NormalizeUSPhone(*in.Phone)
	}
	if in.EntityType != nil {
		m.EntityType = *in.EntityType
	}
	if in.SubmittedDate != nil {
		m.SubmittedDate = in.SubmittedDate.TimePtr()
	}
	if in.Email != nil {
		m.Email = validation.NormalizeEmail(*in.Email)
	}
	if in.ContactPerson != nil {
		m.ContactPerson = validation.CleanSpaces(*in.ContactPerson)
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}
