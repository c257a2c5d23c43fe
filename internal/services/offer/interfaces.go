package offer

import (
	"context"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
)

// Service runs the offer lifecycle.
type Service interface {
	Create(ctx context.Context, merchantID uint, in CreateInput) (*models.Offer, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Offer, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Offer, int64, error)
	ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.Offer, error)
	GetSelected(ctx context.Context, merchantID uint) (*models.Offer, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Offer, error)
	Transition(ctx context.Context, id uint, status string) (*models.Offer, error)
	Delete(ctx context.Context, id uint, actor string) error
	Restore(ctx context.Context, id uint) (*models.Offer, error)
	// Preview prices a set of terms without persisting anything.
	Preview(in TermsInput) (*Quote, error)
}
