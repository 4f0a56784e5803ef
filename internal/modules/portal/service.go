package portal

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"crmportal/internal/database"
	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	portals  PortalRepository
	services ServiceReader
}

func NewService(portals PortalRepository, services ServiceReader) *Service {
	return &Service{portals: portals, services: services}
}

func (s *Service) Create(ctx context.Context, adminID int64, req CreatePortalRequest) (*PortalResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}

	p := &domain.Portal{Name: name, AdminID: adminID}
	if err := s.portals.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := toPortalResponse(p)
	return &resp, nil
}

// List returns the admin's own portals, newest first.
func (s *Service) List(ctx context.Context, adminID int64) ([]PortalResponse, error) {
	portals, err := s.portals.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	out := make([]PortalResponse, 0, len(portals))
	for i := range portals {
		out = append(out, toPortalResponse(&portals[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, adminID, id int64) (*PortalResponse, error) {
	p, err := s.owned(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	resp := toPortalResponse(p)
	return &resp, nil
}

func (s *Service) View(ctx context.Context, adminID, id int64) (*PortalDetail, error) {
	p, err := s.owned(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	services, err := s.services.List(ctx, repository.ServiceFilter{PortalID: &p.ID})
	if err != nil {
		return nil, err
	}

	detail := &PortalDetail{Portal: toPortalResponse(p), Services: make([]ServiceSummary, 0, len(services))}
	for _, svc := range services {
		detail.Services = append(detail.Services, toServiceSummary(svc))
	}
	return detail, nil
}

func (s *Service) Update(ctx context.Context, adminID, id int64, req UpdatePortalRequest) (*PortalResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, adminID, id); err != nil {
		return nil, err
	}

	if err := s.portals.Rename(ctx, id, adminID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortalNotFound
		}
		return nil, err
	}

	return s.Get(ctx, adminID, id)
}

// Delete refuses while services still reference the portal.
func (s *Service) Delete(ctx context.Context, adminID, id int64) error {
	if _, err := s.owned(ctx, adminID, id); err != nil {
		return err
	}

	n, err := s.services.CountByPortal(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPortalHasServices
	}

	if err := s.portals.Delete(ctx, id, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortalNotFound
		}
		// a row was attached between the count and the delete
		if database.IsForeignKeyViolation(err) {
			return ErrPortalHasServices
		}
		return err
	}
	return nil
}

func (s *Service) Directory(ctx context.Context) ([]repository.PortalRef, error) {
	refs, err := s.portals.Directory(ctx)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []repository.PortalRef{}
	}
	return refs, nil
}

func (s *Service) owned(ctx context.Context, adminID, id int64) (*domain.Portal, error) {
	p, err := s.portals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortalNotFound
		}
		return nil, err
	}
	if !p.OwnedBy(adminID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
