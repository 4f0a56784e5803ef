package catalog

import (
	"context"

	"crmportal/internal/domain"
	"crmportal/internal/repository"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

type PortalLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Portal, error)
}

type OrderCounter interface {
	CountByService(ctx context.Context, serviceID int64) (int64, error)
}
