package principal

import (
	"context"

	"mcacrm/internal/models"
)

// Service maintains a merchant's principals under the ownership and
// primary contact invariants.
type Service interface {
	Create(ctx context.Context, merchantID uint, in CreateInput) (*models.Principal, error)
	Get(ctx context.Context, id uint) (*models.Principal, error)
	ListByMerchant(ctx context.Context, merchantID uint, includeDeleted bool) ([]models.Principal, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Principal, error)
	Delete(ctx context.Context, id uint, actor string) error
	Restore(ctx context.Context, id uint) (*models.Principal, error)
	OwnershipSummary(ctx context.Context, merchantID uint) (*OwnershipSummary, error)
	// SearchBySSN finds principals sharing an SSN across all merchants.
	SearchBySSN(ctx context.Context, ssn string) ([]models.Principal, error)
}
