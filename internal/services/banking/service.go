// Package banking keeps each merchant's bank accounts and the single
// primary account used for funding and collections.
package banking

import (
	"context"
	"time"

	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/validation"

	"go.uber.org/zap"
)

type CreateInput struct {
	AccountName   string `json:"account_name" validate:"required,max=255"`
	AccountNumber string `json:"account_number" validate:"required,numeric,min=4,max=17"`
	RoutingNumber string `json:"routing_number" validate:"required,routing"`
	BankName      string `json:"bank_name" validate:"max=255"`
	AccountType   string `json:"account_type" validate:"omitempty,oneof=checking savings"`
	IsActive      *bool  `json:"is_active"`
	IsPrimary     bool   `json:"is_primary"`
}

type UpdateInput struct {
	AccountName   *string `json:"account_name" validate:"omitempty,max=255"`
	AccountNumber *string `json:"account_number" validate:"omitempty,numeric,min=4,max=17"`
	RoutingNumber *string `json:"routing_number" validate:"omitempty,routing"`
	BankName      *string `json:"bank_name" validate:"omitempty,max=255"`
	AccountType   *string `json:"account_type" validate:"omitempty,oneof=checking savings"`
	IsActive      *bool   `json:"is_active"`
	IsPrimary     *bool   `json:"is_primary"`
}

type Service interface {
	Create(ctx context.Context, merchantID uint, in CreateInput) (*models.BankAccount, error)
	Get(ctx context.Context, id uint) (*models.BankAccount, error)
	ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.BankAccount, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.BankAccount, error)
	SetPrimary(ctx context.Context, id uint) (*models.BankAccount, error)
	Delete(ctx context.Context, id uint, actor string) error
	Restore(ctx context.Context, id uint) (*models.BankAccount, error)
}

type service struct {
	store   *repositories.Store
	metrics metrics.Collector
	log     *zap.Logger
}

func NewService(store *repositories.Store, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, metrics: metrics.OrNoop(m), log: logger.Named("banking")}
}

func (s *service) Create(ctx context.Context, merchantID uint, in CreateInput) (_ *models.BankAccount, err error) {
	defer metrics.Observe(s.metrics, "bank_account.create", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	account := &models.BankAccount{
		MerchantID:    merchantID,
		AccountName:   validation.CleanSpaces(in.AccountName),
		AccountNumber: lastFour(in.AccountNumber),
		RoutingNumber: in.RoutingNumber,
		BankName:      validation.CleanSpaces(in.BankName),
		AccountType:   in.AccountType,
		IsActive:      true,
		IsPrimary:     in.IsPrimary,
	}
	if account.AccountType == "" {
		account.AccountType = models.AccountTypeChecking
	}
	if in.IsActive != nil {
		account.IsActive = *in.IsActive
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Merchants.LockByID(merchantID); err != nil {
			return err
		}
		if err := tx.BankAccounts.Create(account); err != nil {
			return err
		}
		if account.IsPrimary {
			return tx.BankAccounts.ClearPrimary(merchantID, account.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("bank account created",
		zap.Uint("merchant_id", merchantID),
		zap.Uint("bank_account_id", account.ID),
		zap.Bool("primary", account.IsPrimary))
	return account, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.BankAccount, error) {
	return s.store.WithContext(ctx).BankAccounts.GetByID(id, false)
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.BankAccount, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Merchants.GetByID(merchantID, true); err != nil {
		return nil, err
	}
	return store.BankAccounts.ListByMerchant(merchantID, includeDeleted)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (_ *models.BankAccount, err error) {
	defer metrics.Observe(s.metrics, "bank_account.update", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(a *models.BankAccount) {
		if in.AccountName != nil {
			a.AccountName = validation.CleanSpaces(*in.AccountName)
		}
		if in.AccountNumber != nil {
			a.AccountNumber = lastFour(*in.AccountNumber)
		}
		if in.RoutingNumber != nil {
			a.RoutingNumber = *in.RoutingNumber
		}
		if in.BankName != nil {
			a.BankName = validation.CleanSpaces(*in.BankName)
		}
		if in.AccountType != nil {
			a.AccountType = *in.AccountType
		}
		if in.IsActive != nil {
			a.IsActive = *in.IsActive
		}
		if in.IsPrimary != nil {
			a.IsPrimary = *in.IsPrimary
		}
	})
}

func (s *service) SetPrimary(ctx context.Context, id uint) (_ *models.BankAccount, err error) {
	defer metrics.Observe(s.metrics, "bank_account.set_primary", time.Now(), &err)

	return s.mutate(ctx, id, func(a *models.BankAccount) {
		a.IsPrimary = true
	})
}

// mutate applies fn to a live account under its merchant's lock, then
// clears every other primary flag when the account ends up primary.
func (s *service) mutate(ctx context.Context, id uint, fn func(*models.BankAccount)) (*models.BankAccount, error) {
	var account *models.BankAccount
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		current, err := tx.BankAccounts.GetByID(id, false)
		if err != nil {
			return err
		}
		if _, err := tx.Merchants.LockByID(current.MerchantID); err != nil {
			return err
		}
		if account, err = tx.BankAccounts.GetByID(id, false); err != nil {
			return err
		}
		fn(account)
		if account.IsPrimary {
			if err := tx.BankAccounts.ClearPrimary(account.MerchantID, account.ID); err != nil {
				return err
			}
		}
		return tx.BankAccounts.Update(account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Delete(ctx context.Context, id uint, actor string) (err error) {
	defer metrics.Observe(s.metrics, "bank_account.delete", time.Now(), &err)

	return s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		account, err := tx.BankAccounts.GetByID(id, false)
		if err != nil {
			return err
		}
		account.MarkDeleted(actor, time.Now().UTC())
		account.IsPrimary = false
		return tx.BankAccounts.Update(account)
	})
}

func (s *service) Restore(ctx context.Context, id uint) (_ *models.BankAccount, err error) {
	defer metrics.Observe(s.metrics, "bank_account.restore", time.Now(), &err)

	var account *models.BankAccount
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if account, err = tx.BankAccounts.GetByID(id, true); err != nil {
			return err
		}
		if !account.IsDeleted {
			return nil
		}
		account.Restore()
		return tx.BankAccounts.Update(account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// lastFour keeps only the trailing four digits of an account number.
func lastFour(number string) string {
	d := validation.Digits(number)
	if len(d) <= 4 {
		return d
	}
	return d[len(d)-4:]
}
