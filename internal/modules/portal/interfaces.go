package portal

import (
	"context"

	"crmportal/internal/domain"
	"crmportal/internal/repository"
)

type PortalRepository interface {
	Create(ctx context.Context, p *domain.Portal) error
	GetByID(ctx context.Context, id int64) (*domain.Portal, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]domain.Portal, error)
	Directory(ctx context.Context) ([]repository.PortalRef, error)
	Rename(ctx context.Context, id, adminID int64, name string) error
	Delete(ctx context.Context, id, adminID int64) error
}

type ServiceReader interface {
	List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error)
	CountByPortal(ctx context.Context, portalID int64) (int64, error)
}
