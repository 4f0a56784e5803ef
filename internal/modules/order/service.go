package order

import (
	"context"
	"errors"
	"time"

	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	orders   OrderRepository
	services ServiceLookup
	portals  PortalLookup
	now      func() time.Time
}

func NewService(orders OrderRepository, services ServiceLookup, portals PortalLookup) *Service {
	return &Service{orders: orders, services: services, portals: portals, now: time.Now}
}

// Create places a pending order. The total is computed here, once, from the
// service's current price.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateOrderRequest) (*OrderResponse, error) {
	if req.Quantity == nil || *req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	total, err := domain.OrderTotal(svc.Price, *req.Quantity)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		OrderDate:   s.now().UTC(),
		Status:      domain.OrderPending,
		TotalAmount: total,
		Quantity:    *req.Quantity,
		CustomerID:  customerID,
		ServiceID:   svc.ID,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	return s.lineResponse(ctx, o.ID)
}

// List shows a customer their own orders and an admin the orders placed in
// their portals, optionally narrowed to one owned portal.
func (s *Service) List(ctx context.Context, p domain.Principal, q ListQuery) ([]OrderResponse, error) {
	switch {
	case p.IsCustomer():
		lines, err := s.orders.ListByCustomer(ctx, p.CustomerID, 0)
		if err != nil {
			return nil, err
		}
		return toOrderResponses(lines), nil
	case p.IsAdmin():
		if q.PortalID != nil {
			portal, err := s.portals.GetByID(ctx, *q.PortalID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrPortalNotFound
				}
				return nil, err
			}
			if !portal.OwnedBy(p.AdminID) {
				return nil, ErrForbidden
			}
		}
		lines, err := s.orders.ListForAdmin(ctx, repository.AdminOrderFilter{AdminID: p.AdminID, PortalID: q.PortalID})
		if err != nil {
			return nil, err
		}
		return toOrderResponses(lines), nil
	default:
		return nil, ErrForbidden
	}
}

func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*OrderResponse, error) {
	line, err := s.visible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(line)
	return &resp, nil
}

// UpdateQuantity edits an own pending order and recomputes its total.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, id int64, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.Quantity == nil || *req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	line, err := s.visible(ctx, domain.CustomerPrincipal(0, "", customerID), id)
	if err != nil {
		return nil, err
	}
	if !line.Editable() {
		return nil, domain.ErrInvalidStatusTransition
	}

	svc, err := s.services.GetByID(ctx, line.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	total, err := domain.OrderTotal(svc.Price, *req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateQuantity(ctx, id, *req.Quantity, total); err != nil {
		return nil, err
	}

	return s.lineResponse(ctx, id)
}

// Complete marks a pending order delivered. Completing a delivered order
// changes nothing.
func (s *Service) Complete(ctx context.Context, adminID, id int64) (*OrderResponse, error) {
	line, err := s.visible(ctx, domain.AdminPrincipal(0, "", adminID), id)
	if err != nil {
		return nil, err
	}

	next, changed, err := domain.CompleteStatus(line.Status)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
			return nil, err
		}
		line.Status = next
	}

	resp := toOrderResponse(line)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := s.visible(ctx, p, id); err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// visible loads an order the principal may act on.
func (s *Service) visible(ctx context.Context, p domain.Principal, id int64) (*domain.OrderLine, error) {
	line, err := s.orders.GetLine(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch {
	case p.IsCustomer() && line.CustomerID == p.CustomerID:
		return line, nil
	case p.IsAdmin() && line.ManagedBy(p.AdminID):
		return line, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *Service) lineResponse(ctx context.Context, id int64) (*OrderResponse, error) {
	line, err := s.orders.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(line)
	return &resp, nil
}
