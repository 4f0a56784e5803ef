package principal

import (
	"context"

	"crmportal/internal/domain"
)

type AdminFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)
}

type CustomerFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
