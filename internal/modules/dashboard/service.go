package dashboard

import (
	"context"
	"errors"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	admins    AdminReader
	customers CustomerReader
	portals   PortalCounter
	services  ServiceCounter
	orders    OrderStats
}

func NewService(admins AdminReader, customers CustomerReader, portals PortalCounter, services ServiceCounter, orders OrderStats) *Service {
	return &Service{admins: admins, customers: customers, portals: portals, services: services, orders: orders}
}

// Admin summarizes everything the administrator owns. Revenue counts
// delivered orders only.
func (s *Service) Admin(ctx context.Context, adminID int64) (*AdminDashboard, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	portals, err := s.portals.CountByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	services, err := s.services.CountByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	totals, err := s.orders.TotalsForAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Admin:        admin,
		PortalCount:  portals,
		ServiceCount: services,
		Orders:       toStatusCounts(totals),
		Revenue:      totals.Revenue.StringFixed(domain.MoneyScale),
	}, nil
}

func (s *Service) Customer(ctx context.Context, customerID int64) (*CustomerDashboard, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	totals, err := s.orders.TotalsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.ListByCustomer(ctx, customerID, RecentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &CustomerDashboard{
		Customer:     customer,
		Orders:       toStatusCounts(totals),
		RecentOrders: toRecentOrders(recent),
	}, nil
}
