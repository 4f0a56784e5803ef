package catalog

import (
	"context"
	"errors"
	"strings"

	"crmportal/internal/database"
	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	services ServiceRepository
	portals  PortalLookup
	orders   OrderCounter
}

func NewService(services ServiceRepository, portals PortalLookup, orders OrderCounter) *Service {
	return &Service{services: services, portals: portals, orders: orders}
}

func (s *Service) Create(ctx context.Context, adminID int64, req CreateServiceRequest) (*ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	if name == "" || desc == "" {
		return nil, ErrInvalidInput
	}
	if req.Price == nil {
		return nil, domain.ErrInvalidPrice
	}
	price, err := domain.NormalizePrice(*req.Price)
	if err != nil {
		return nil, err
	}

	if req.PortalID != nil {
		if err := s.checkPortalOwner(ctx, adminID, *req.PortalID); err != nil {
			return nil, err
		}
	}

	svc := &domain.Service{
		Name:        name,
		Description: desc,
		Price:       price,
		PortalID:    req.PortalID,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	resp := toServiceResponse(svc)
	return &resp, nil
}

// List orders by name. Customers never see inactive services.
func (s *Service) List(ctx context.Context, p domain.Principal, q ListQuery) ([]ServiceResponse, error) {
	filter := repository.ServiceFilter{
		PortalID:   q.PortalID,
		ActiveOnly: q.Active || !p.IsAdmin(),
	}

	services, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceResponse(&services[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*ServiceResponse, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive && !p.IsAdmin() {
		return nil, ErrServiceNotFound
	}

	resp := toServiceResponse(svc)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, adminID, id int64, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, adminID, svc); err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if svc.Name == "" || svc.Description == "" {
		return nil, ErrInvalidInput
	}
	if req.Price != nil {
		price, err := domain.NormalizePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		svc.Price = price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}

	resp := toServiceResponse(svc)
	return &resp, nil
}

// Delete refuses while orders reference the service.
func (s *Service) Delete(ctx context.Context, adminID, id int64) error {
	svc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, adminID, svc); err != nil {
		return err
	}

	n, err := s.orders.CountByService(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrServiceHasOrders
	}

	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		// a row was attached between the count and the delete
		if database.IsForeignKeyViolation(err) {
			return ErrServiceHasOrders
		}
		return err
	}
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

// authorize lets any admin manage unscoped services; scoped ones belong to
// the portal owner.
func (s *Service) authorize(ctx context.Context, adminID int64, svc *domain.Service) error {
	if svc.PortalID == nil {
		return nil
	}
	return s.checkPortalOwner(ctx, adminID, *svc.PortalID)
}

func (s *Service) checkPortalOwner(ctx context.Context, adminID, portalID int64) error {
	p, err := s.portals.GetByID(ctx, portalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortalNotFound
		}
		return err
	}
	if !p.OwnedBy(adminID) {
		return ErrForbidden
	}
	return nil
}
