package merchant

import (
	"context"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
)

// Service manages the merchant registry.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Merchant, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Merchant, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Merchant, int64, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Merchant, error)
	Delete(ctx context.Context, id uint, actor string) error
	Restore(ctx context.Context, id uint) (*models.Merchant, error)
	Stats(ctx context.Context) (*Stats, error)
}
