package dashboard

import (
	"context"

	"crmportal/internal/domain"
	"crmportal/internal/repository"
)

type AdminReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Administrator, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type PortalCounter interface {
	CountByAdmin(ctx context.Context, adminID int64) (int64, error)
}

type ServiceCounter interface {
	CountByAdmin(ctx context.Context, adminID int64) (int64, error)
}

type OrderStats interface {
	TotalsForAdmin(ctx context.Context, adminID int64) (repository.StatusTotals, error)
	TotalsForCustomer(ctx context.Context, customerID int64) (repository.StatusTotals, error)
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.OrderLine, error)
}
