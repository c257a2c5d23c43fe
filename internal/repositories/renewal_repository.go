package repositories

import "mcacrm/internal/models"

// RenewalRepository persists renewal infos, junctions and relationships.
type RenewalRepository interface {
	CreateInfo(info *models.RenewalInfo) error
	GetInfo(id uint) (*models.RenewalInfo, error)
	UpdateInfo(info *models.RenewalInfo) error
	ListInfosByDeal(newDealID uint) ([]models.RenewalInfo, error)
	CreateJunction(junction *models.DealRenewalJunction) error
	GetJunctionByInfo(infoID uint) (*models.DealRenewalJunction, error)
	CreateRelationship(rel *models.DealRenewalRelationship) error
	UpdateRelationship(rel *models.DealRenewalRelationship) error
	// GetActiveRelationship finds the active old to new edge.
	GetActiveRelationship(oldDealID, newDealID uint) (*models.DealRenewalRelationship, error)
	// GetActiveOutgoing finds the active edge where dealID is the old deal.
	GetActiveOutgoing(oldDealID uint) (*models.DealRenewalRelationship, error)
	// ListActiveIncoming lists active edges into a renewal deal.
	ListActiveIncoming(newDealID uint) ([]models.DealRenewalRelationship, error)
	ListRelationships(dealID uint) ([]models.DealRenewalRelationship, error)
}
