package principal

import (
	"context"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/utils"
	"mcacrm/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxOwnership = decimal.NewFromInt(100)

type service struct {
	store   *repositories.Store
	sealer  *utils.SSNSealer
	config  Config
	metrics metrics.Collector
	log     *zap.Logger
}

func NewService(store *repositories.Store, sealer *utils.SSNSealer, config Config, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	if sealer == nil {
		panic("ssn sealer is required")
	}
	return &service{
		store:   store,
		sealer:  sealer,
		config:  config,
		metrics: metrics.OrNoop(m),
		log:     logger.Named("principal"),
	}
}

func (s *service) Create(ctx context.Context, merchantID uint, in CreateInput) (_ *models.Principal, err error) {
	defer metrics.Observe(s.metrics, "principal.create", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p := &models.Principal{
		MerchantID:          merchantID,
		FirstName:           validation.CleanSpaces(in.FirstName),
		LastName:            validation.CleanSpaces(in.LastName),
		OwnershipPercentage: maxOwnership,
		DateOfBirth:         in.DateOfBirth.TimePtr(),
		HomeAddress:         validation.CleanSpaces(in.HomeAddress),
		HomeCity:            validation.CleanSpaces(in.HomeCity),
		HomeState:           validation.NormalizeState(in.HomeState),
		HomeZip:             validation.NormalizeZip(in.HomeZip),
		Phone:               validation.NormalizeUSPhone(in.Phone),
		Email:               validation.NormalizeEmail(in.Email),
		IsPrimaryContact:    in.IsPrimaryContact,
		IsGuarantor:         true,
	}
	if in.OwnershipPercentage != nil {
		p.OwnershipPercentage = in.OwnershipPercentage.Round(2)
	}
	if in.IsGuarantor != nil {
		p.IsGuarantor = *in.IsGuarantor
	}
	if in.SSN != "" {
		if err := s.setSSN(p, in.SSN); err != nil {
			return nil, err
		}
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Merchants.LockByID(merchantID); err != nil {
			return err
		}
		if err := s.guard(tx, p); err != nil {
			return err
		}
		if err := tx.Principals.Create(p); err != nil {
			return err
		}
		if p.IsPrimaryContact {
			return tx.Principals.ClearPrimaryContact(merchantID, p.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("principal created",
		zap.Uint("merchant_id", merchantID),
		zap.Uint("principal_id", p.ID),
		zap.String("ownership", p.OwnershipPercentage.StringFixed(2)))
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Principal, error) {
	return s.store.WithContext(ctx).Principals.GetByID(id, false)
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.Principal, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Merchants.GetByID(merchantID, true); err != nil {
		return nil, err
	}
	return store.Principals.ListByMerchant(merchantID, includeDeleted)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.Principal, err error) {
	defer metrics.Observe(s.metrics, "principal.update", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var p *models.Principal
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		current, err := tx.Principals.GetByID(id, false)
		if err != nil {
			return err
		}
		if _, err := tx.Merchants.LockByID(current.MerchantID); err != nil {
			return err
		}
		// re-read under the merchant lock
		if p, err = tx.Principals.GetByID(id, false); err != nil {
			return err
		}
		if err := s.apply(p, in); err != nil {
			return err
		}
		if err := s.guard(tx, p); err != nil {
			return err
		}
		if p.IsPrimaryContact {
			if err := tx.Principals.ClearPrimaryContact(p.MerchantID, p.ID); err != nil {
				return err
			}
		}
		return tx.Principals.Update(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint, actor string) (err error) {
	defer metrics.Observe(s.metrics, "principal.delete", time.Now(), &err)

	return s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		p, err := tx.Principals.GetByID(id, false)
		if err != nil {
			return err
		}
		p.MarkDeleted(actor, time.Now().UTC())
		p.IsPrimaryContact = false
		return tx.Principals.Update(p)
	})
}

// Restore brings a principal back only if its ownership still fits. A
// restored principal does not take the primary contact flag back.
func (s *service) Restore(ctx context.Context, id uint) (_ *models.Principal, err error) {
	defer metrics.Observe(s.metrics, "principal.restore", time.Now(), &err)

	var p *models.Principal
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if p, err = tx.Principals.GetByID(id, true); err != nil {
			return err
		}
		if !p.IsDeleted {
			return nil
		}
		if _, err := tx.Merchants.LockByID(p.MerchantID); err != nil {
			return err
		}
		p.Restore()
		if err := s.guard(tx, p); err != nil {
			return err
		}
		return tx.Principals.Update(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) OwnershipSummary(ctx context.Context, merchantID uint) (*OwnershipSummary, error) {
	principals, err := s.ListByMerchant(ctx, merchantID, false)
	if err != nil {
		return nil, err
	}

	summary := &OwnershipSummary{
		MerchantID:     merchantID,
		Principals:     make([]Share, 0, len(principals)),
		TotalOwnership: decimal.Zero,
	}
	for _, p := range principals {
		share := Share{
			PrincipalID:         p.ID,
			Name:                p.FullName(),
			OwnershipPercentage: p.OwnershipPercentage,
			IsPrimaryContact:    p.IsPrimaryContact,
			IsGuarantor:         p.IsGuarantor,
			MaskedSSN:           p.MaskedSSN(),
		}
		summary.Principals = append(summary.Principals, share)
		summary.TotalOwnership = summary.TotalOwnership.Add(p.OwnershipPercentage)
		if p.IsGuarantor {
			summary.GuarantorCount++
		}
		if p.IsPrimaryContact {
			primary := share
			summary.PrimaryContact = &primary
		}
	}
	summary.Unallocated = maxOwnership.Sub(summary.TotalOwnership)
	summary.FullyAllocated = summary.TotalOwnership.Equal(maxOwnership)
	return summary, nil
}

func (s *service) SearchBySSN(ctx context.Context, ssn string) ([]models.Principal, error) {
	normalized := validation.NormalizeSSN(ssn)
	if len(validation.Digits(normalized)) != 9 {
		return nil, apperrors.Validation("invalid ssn",
			apperrors.FieldError{Field: "ssn", Message: "must be a valid SSN (XXX-XX-XXXX)"})
	}
	return s.store.WithContext(ctx).Principals.FindBySSN(s.sealer.Fingerprint(normalized))
}

// guard checks the ownership, SSN and primary contact rules for p against
// the other live principals of its merchant. The caller holds the
// merchant lock.
func (s *service) guard(tx *repositories.Store, p *models.Principal) error {
	others, err := tx.Principals.SumOwnership(p.MerchantID, p.ID)
	if err != nil {
		return err
	}
	if total := others.Add(p.OwnershipPercentage); total.GreaterThan(maxOwnership) {
		return apperrors.ErrOwnershipExceeded.WithMessage(
			"total ownership would be %s%% (existing %s%% + %s%%), maximum is 100%%",
			total.StringFixed(2), others.StringFixed(2), p.OwnershipPercentage.StringFixed(2))
	}

	if s.config.SSNDuplicateCheck && p.SSNFingerprint != nil {
		taken, err := tx.Principals.ExistsWithSSN(p.MerchantID, *p.SSNFingerprint, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrDuplicateSSN
		}
	}

	if p.IsPrimaryContact {
		v := validation.New()
		v.Required("email", p.Email)
		v.Required("phone", p.Phone)
		if err := v.Err("primary contact must have email and phone"); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) setSSN(p *models.Principal, raw string) error {
	ssn := validation.NormalizeSSN(raw)
	sealed, err := s.sealer.Seal(ssn)
	if err != nil {
		return err
	}
	fp := s.sealer.Fingerprint(ssn)
	p.SSNCiphertext = sealed
	p.SSNFingerprint = &fp
	p.SSNLast4 = utils.Last4(ssn)
	return nil
}

func (s *service) apply(p *models.Principal, in UpdateInput) error {
	if in.FirstName != nil {
		p.FirstName = validation.CleanSpaces(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = validation.CleanSpaces(*in.LastName)
	}
	if in.OwnershipPercentage != nil {
		p.OwnershipPercentage = in.OwnershipPercentage.Round(2)
	}
	if in.SSN != nil {
		if err := s.setSSN(p, *in.SSN); err != nil {
			return err
		}
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth.TimePtr()
	}
	if in.HomeAddress != nil {
		p.HomeAddress = validation.CleanSpaces(*in.HomeAddress)
	}
	if in.HomeCity != nil {
		p.HomeCity = validation.CleanSpaces(*in.HomeCity)
	}
	if in.HomeState != nil {
		p.HomeState = validation.NormalizeState(*in.HomeState)
	}
	if in.HomeZip != nil {
		p.HomeZip = validation.NormalizeZip(*in.HomeZip)
	}
	if in.Phone != nil {
		p.Phone = validation.NormalizeUSPhone(*in.Phone)
	}
	if in.Email != nil {
		p.Email = validation.NormalizeEmail(*in.Email)
	}
	if in.IsPrimaryContact != nil {
		p.IsPrimaryContact = *in.IsPrimaryContact
	}
	if in.IsGuarantor != nil {
		p.IsGuarantor = *in.IsGuarantor
	}
	return nil
}
