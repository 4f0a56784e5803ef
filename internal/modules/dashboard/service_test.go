package dashboard

import (
	"context"
	"testing"

	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAdmins struct {
	mock.Mock
}

func (m *mockAdmins) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

type mockCustomers struct {
	mock.Mock
}

func (m *mockCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) CountByAdmin(ctx context.Context, adminID int64) (int64, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) TotalsForAdmin(ctx context.Context, adminID int64) (repository.StatusTotals, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(repository.StatusTotals), args.Error(1)
}

func (m *mockOrders) TotalsForCustomer(ctx context.Context, customerID int64) (repository.StatusTotals, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(repository.StatusTotals), args.Error(1)
}

func (m *mockOrders) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.OrderLine, error) {
	args := m.Called(ctx, customerID, limit)
	return args.Get(0).([]domain.OrderLine), args.Error(1)
}

func TestService_Admin(t *testing.T) {
	admins, portals, services, orders := new(mockAdmins), new(mockCounter), new(mockCounter), new(mockOrders)
	svc := NewService(admins, new(mockCustomers), portals, services, orders)

	admins.On("GetByID", mock.Anything, int64(7)).Return(&domain.Administrator{ID: 7, Username: "admin1"}, nil)
	portals.On("CountByAdmin", mock.Anything, int64(7)).Return(int64(2), nil)
	services.On("CountByAdmin", mock.Anything, int64(7)).Return(int64(3), nil)
	orders.On("TotalsForAdmin", mock.Anything, int64(7)).Return(repository.StatusTotals{
		Counts:  map[domain.OrderStatus]int64{domain.OrderDelivered: 2, domain.OrderPending: 1},
		Revenue: decimal.RequireFromString("1499.985"),
	}, nil)

	d, err := svc.Admin(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.PortalCount)
	assert.Equal(t, int64(3), d.ServiceCount)
	assert.Equal(t, StatusCounts{Pending: 1, Delivered: 2, Total: 3}, d.Orders)
	assert.Equal(t, "1499.99", d.Revenue)
}

func TestService_Admin_Missing(t *testing.T) {
	admins := new(mockAdmins)
	svc := NewService(admins, new(mockCustomers), new(mockCounter), new(mockCounter), new(mockOrders))
	admins.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Admin(context.Background(), 7)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_Customer(t *testing.T) {
	customers, orders := new(mockCustomers), new(mockOrders)
	svc := NewService(new(mockAdmins), customers, new(mockCounter), new(mockCounter), orders)

	customers.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, FirstName: "John"}, nil)
	orders.On("TotalsForCustomer", mock.Anything, int64(9)).Return(repository.StatusTotals{
		Counts:  map[domain.OrderStatus]int64{domain.OrderShipped: 1},
		Revenue: decimal.Zero,
	}, nil)
	orders.On("ListByCustomer", mock.Anything, int64(9), RecentOrdersLimit).Return([]domain.OrderLine{{
		Order:       domain.Order{ID: 4, Status: domain.OrderShipped, Quantity: 2, TotalAmount: decimal.RequireFromString("20")},
		ServiceName: "SEO Optimization",
	}}, nil)

	d, err := svc.Customer(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Shipped: 1, Total: 1}, d.Orders)
	require.Len(t, d.RecentOrders, 1)
	assert.Equal(t, "20.00", d.RecentOrders[0].TotalAmount)
	assert.Equal(t, "SEO Optimization", d.RecentOrders[0].ServiceName)
}
