package repository

import (
	"context"
	"strings"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

// RoleRecord is a role row (administrator, customer, employee) that points
// back at its account.
type RoleRecord interface {
	SetAccountID(id int64)
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateWithRole inserts the account and its role record in one transaction.
func (r *AccountRepository) CreateWithRole(ctx context.Context, acc *domain.Account, role RoleRecord) error {
	acc.Email = normalizeEmail(acc.Email)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		role.SetAccountID(acc.ID)
		return tx.Create(role).Error
	})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acc domain.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
