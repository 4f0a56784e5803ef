package order

import (
	"context"

	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetLine(ctx context.Context, id int64) (*domain.OrderLine, error)
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.OrderLine, error)
	ListForAdmin(ctx context.Context, f repository.AdminOrderFilter) ([]domain.OrderLine, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type PortalLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Portal, error)
}
