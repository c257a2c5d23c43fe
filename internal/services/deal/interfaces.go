package deal

import (
	"context"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
)

// Service defines the deal lifecycle operations
type Service interface {
	Create(ctx context.Context, in CreateInput, actor string) (*models.Deal, error)
	Get(ctx context.Context, id uint) (*models.Deal, error)
	GetByNumber(ctx context.Context, number string) (*models.Deal, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Deal, int64, error)
	ListActive(ctx context.Context) ([]models.Deal, error)
	ListByMerchant(ctx context.Context, merchantID uint) ([]models.Deal, error)
	ListRenewalsByMerchant(ctx context.Context, merchantID uint) ([]models.Deal, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Deal, error)
	// Cancel is the deal delete: the row stays with status cancelled.
	Cancel(ctx context.Context, id uint) (*models.Deal, error)
	RecomputeBalance(ctx context.Context, id uint) (*models.Deal, error)
	// RecomputeAll rebuilds every deal's balance and returns how many
	// deals were processed.
	RecomputeAll(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*PortfolioSummary, error)
	// InvalidateSummary drops the cached portfolio summary.
	InvalidateSummary(ctx context.Context)
}

// SummaryCache stores the computed portfolio summary.
type SummaryCache interface {
	Get(ctx context.Context) (*PortfolioSummary, bool, error)
	Set(ctx context.Context, summary *PortfolioSummary) error
	Invalidate(ctx context.Context) error
}
