package account

import (
	"context"

	"crmportal/internal/domain"
)

type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Administrator, error)
	UpdateProfile(ctx context.Context, a *domain.Administrator) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, c *domain.Customer) error
}
