package renewal

import (
	"context"

	"mcacrm/internal/models"
)

// Service runs the renewal protocol and its reports.
type Service interface {
	// Create opens a renewal deal from a selected offer, paying off every
	// listed old deal, in one transaction.
	Create(ctx context.Context, in CreateInput, actor string) (*models.Deal, error)
	// Reverse undoes one old to new edge. The renewal deal keeps its books.
	Reverse(ctx context.Context, oldDealID, newDealID uint) (*models.DealRenewalRelationship, error)
	Chain(ctx context.Context, dealID uint) (*Chain, error)
	Summary(ctx context.Context, dealID uint) (*Summary, error)
	UpdateInfo(ctx context.Context, infoID uint, in InfoUpdateInput) (*models.RenewalInfo, error)
	ListInfos(ctx context.Context, dealID uint) ([]models.RenewalInfo, error)
	ListRelationships(ctx context.Context, dealID uint) ([]models.DealRenewalRelationship, error)
}

// SummaryInvalidator drops cached portfolio figures after deals change.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}
