package payment

import (
	"context"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
)

// Service defines the payment ledger. Every write recomputes the owning
// deal's balance in the same transaction.
type Service interface {
	Record(ctx context.Context, in RecordInput) (*models.Payment, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Payment, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Payment, int64, error)
	ListByDeal(ctx context.Context, dealID uint, includeDeleted bool) ([]models.Payment, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Payment, error)
	MarkBounced(ctx context.Context, id uint, in BounceInput) (*models.Payment, error)
	Delete(ctx context.Context, id uint, actor string) error
	Restore(ctx context.Context, id uint) (*models.Payment, error)

	// Reports
	Summary(ctx context.Context, dealID uint) (*Summary, error)
	StatsByType(ctx context.Context, dealID uint) ([]repositories.PaymentTypeStat, error)
	Bounced(ctx context.Context, dealID uint) ([]models.Payment, error)
	Recent(ctx context.Context, days, limit int) ([]models.Payment, error)
}

// SummaryInvalidator drops cached portfolio figures after a balance moves.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}
