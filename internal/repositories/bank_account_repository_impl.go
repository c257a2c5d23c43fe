package repositories

import (
	"fmt"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"gorm.io/gorm"
)

type bankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(account *models.BankAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create bank account: %w", translate(err, nil))
	}
	return nil
}

func (r *bankAccountRepository) GetByID(id uint, includeDeleted bool) (*models.BankAccount, error) {
	var account models.BankAccount
	q := notDeleted(r.db.Where("id = ?", id), includeDeleted)
	if err := q.First(&account).Error; err != nil {
		return nil, translate(err, apperrors.ErrBankAccountNotFound)
	}
	return &account, nil
}

func (r *bankAccountRepository) Update(account *models.BankAccount) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update bank account: %w", translate(err, nil))
	}
	return nil
}

func (r *bankAccountRepository) ListByMerchant(merchantID uint, includeDeleted bool) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	q := notDeleted(r.db.Where("merchant_id = ?", merchantID), includeDeleted)
	if err := q.Order("is_primary DESC, id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (r *bankAccountRepository) GetPrimary(merchantID uint) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.Where("merchant_id = ? AND is_primary = ? AND is_deleted = ?", merchantID, true, false).
		First(&account).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrBankAccountNotFound)
	}
	return &account, nil
}

func (r *bankAccountRepository) ClearPrimary(merchantID, exceptID uint) error {
	err := r.db.Model(&models.BankAccount{}).
		Where("merchant_id = ? AND id <> ? AND is_primary = ?", merchantID, exceptID, true).
		Update("is_primary", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear primary bank account: %w", err)
	}
	return nil
}
