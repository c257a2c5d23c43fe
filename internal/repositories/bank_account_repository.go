package repositories

import "mcacrm/internal/models"

// BankAccountRepository defines the interface for bank account persistence.
type BankAccountRepository interface {
	Create(account *models.BankAccount) error
	GetByID(id uint, includeDeleted bool) (*models.BankAccount, error)
	Update(account *models.BankAccount) error
	ListByMerchant(merchantID uint, includeDeleted bool) ([]models.BankAccount, error)
	GetPrimary(merchantID uint) (*models.BankAccount, error)
	ClearPrimary(merchantID, exceptID uint) error
}
