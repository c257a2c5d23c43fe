package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository over one connection or transaction.
type Store struct {
	db           *gorm.DB
	Merchants    MerchantRepository
	Principals   PrincipalRepository
	BankAccounts BankAccountRepository
	Offers       OfferRepository
	Deals        DealRepository
	Payments     PaymentRepository
	Renewals     RenewalRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Merchants:    NewMerchantRepository(db),
		Principals:   NewPrincipalRepository(db),
		BankAccounts: NewBankAccountRepository(db),
		Offers:       NewOfferRepository(db),
		Deals:        NewDealRepository(db),
		Payments:     NewPaymentRepository(db),
		Renewals:     NewRenewalRepository(db),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// WithContext returns a store whose queries carry ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return NewStore(s.db.WithContext(ctx))
}

// ExecuteInTransaction runs fn against a store bound to a single
// transaction. Any error returned by fn rolls the transaction back.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
