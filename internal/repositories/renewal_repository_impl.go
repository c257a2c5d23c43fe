package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
)

type renewalRepository struct {
	db *gorm.DB
}

func NewRenewalRepository(db *gorm.DB) RenewalRepository {
	return &renewalRepository{db: db}
}

func (r *renewalRepository) CreateInfo(info *models.RenewalInfo) error {
	if err := r.db.Omit("OldDeal").Create(info).Error; err != nil {
		return fmt.Errorf("failed to create renewal info: %w", translate(err, nil))
	}
	return nil
}

func (r *renewalRepository) GetInfo(id uint) (*models.RenewalInfo, error) {
	var info models.RenewalInfo
	if err := r.db.First(&info, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrRenewalInfoNotFound)
	}
	return &info, nil
}

func (r *renewalRepository) UpdateInfo(info *models.RenewalInfo) error {
	if err := r.db.Omit("OldDeal").Save(info).Error; err != nil {
		return fmt.Errorf("failed to update renewal info: %w", translate(err, nil))
	}
	return nil
}

func (r *renewalRepository) ListInfosByDeal(newDealID uint) ([]models.RenewalInfo, error) {
	var infos []models.RenewalInfo
	err := r.db.Joins("JOIN deal_renewal_junctions j ON j.renewal_info_id = renewal_infos.id").
		Where("j.deal_id = ?", newDealID).
		Order("renewal_infos.id ASC").
		Find(&infos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal infos: %w", err)
	}
	return infos, nil
}

func (r *renewalRepository) CreateJunction(junction *models.DealRenewalJunction) error {
	if err := r.db.Omit("Deal", "RenewalInfo").Create(junction).Error; err != nil {
		return fmt.Errorf("failed to create renewal junction: %w", translate(err, nil))
	}
	return nil
}

func (r *renewalRepository) GetJunctionByInfo(infoID uint) (*models.DealRenewalJunction, error) {
	var junction models.DealRenewalJunction
	if err := r.db.Where("renewal_info_id = ?", infoID).First(&junction).Error; err != nil {
		return nil, translate(err, apperrors.ErrRenewalInfoNotFound)
	}
	return &junction, nil
}

func (r *renewalRepository) CreateRelationship(rel *models.DealRenewalRelationship) error {
	if err := r.db.Omit("OldDeal", "NewDeal", "RenewalInfo").Create(rel).Error; err != nil {
		return fmt.Errorf("failed to create renewal relationship: %w", translate(err, nil))
	}
	return nil
}

func (r *renewalRepository) UpdateRelationship(rel *models.DealRenewalRelationship) error {
	if err := r.db.Omit("OldDeal", "NewDeal", "RenewalInfo").Save(rel).Error; err != nil {
		return fmt.Errorf("failed to update renewal relationship: %w", translate(err, nil))
	}
	return nil
}

func (r *renewalRepository) GetActiveRelationship(oldDealID, newDealID uint) (*models.DealRenewalRelationship, error) {
	var rel models.DealRenewalRelationship
	err := r.db.Where("old_deal_id = ? AND new_deal_id = ? AND status = ? AND is_deleted = ?",
		oldDealID, newDealID, models.RenewalStatusActive, false).
		First(&rel).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRenewalNotFound)
	}
	return &rel, nil
}

func (r *renewalRepository) GetActiveOutgoing(oldDealID uint) (*models.DealRenewalRelationship, error) {
	var rel models.DealRenewalRelationship
	err := r.db.Where("old_deal_id = ? AND status = ? AND is_deleted = ?",
		oldDealID, models.RenewalStatusActive, false).
		Order("id DESC").
		First(&rel).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRenewalNotFound)
	}
	return &rel, nil
}

func (r *renewalRepository) ListActiveIncoming(newDealID uint) ([]models.DealRenewalRelationship, error) {
	var rels []models.DealRenewalRelationship
	err := r.db.Where("new_deal_id = ? AND status = ? AND is_deleted = ?",
		newDealID, models.RenewalStatusActive, false).
		Order("id ASC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal relationships: %w", err)
	}
	return rels, nil
}

// ListRelationships returns every edge touching dealID on either side.
func (r *renewalRepository) ListRelationships(dealID uint) ([]models.DealRenewalRelationship, error) {
	var rels []models.DealRenewalRelationship
	err := r.db.Where("(old_deal_id = ? OR new_deal_id = ?) AND is_deleted = ?", dealID, dealID, false).
		Order("id ASC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list renewal relationships: %w", err)
	}
	return rels, nil
}
