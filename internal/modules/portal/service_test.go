package portal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPortalRepo struct {
	mock.Mock
}

func (m *mockPortalRepo) Create(ctx context.Context, p *domain.Portal) error {
	args := m.Called(ctx, p)
	p.ID = 1
	return args.Error(0)
}

func (m *mockPortalRepo) GetByID(ctx context.Context, id int64) (*domain.Portal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portal), args.Error(1)
}

func (m *mockPortalRepo) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Portal, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).([]domain.Portal), args.Error(1)
}

func (m *mockPortalRepo) Directory(ctx context.Context) ([]repository.PortalRef, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.PortalRef), args.Error(1)
}

func (m *mockPortalRepo) Rename(ctx context.Context, id, adminID int64, name string) error {
	args := m.Called(ctx, id, adminID, name)
	return args.Error(0)
}

func (m *mockPortalRepo) Delete(ctx context.Context, id, adminID int64) error {
	args := m.Called(ctx, id, adminID)
	return args.Error(0)
}

type mockServiceReader struct {
	mock.Mock
}

func (m *mockServiceReader) List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceReader) CountByPortal(ctx context.Context, portalID int64) (int64, error) {
	args := m.Called(ctx, portalID)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Create(t *testing.T) {
	portals := new(mockPortalRepo)
	svc := NewService(portals, new(mockServiceReader))

	portals.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Portal) bool {
		return p.Name == "Acme" && p.AdminID == 7
	})).Return(nil)

	p, err := svc.Create(context.Background(), 7, CreatePortalRequest{Name: "  Acme "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, int64(7), p.AdminID)
}

func TestService_Create_InvalidName(t *testing.T) {
	svc := NewService(new(mockPortalRepo), new(mockServiceReader))

	_, err := svc.Create(context.Background(), 7, CreatePortalRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Create(context.Background(), 7, CreatePortalRequest{Name: strings.Repeat("x", 101)})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestService_View_Ownership(t *testing.T) {
	portals := new(mockPortalRepo)
	services := new(mockServiceReader)
	svc := NewService(portals, services)

	acme := &domain.Portal{ID: 3, Name: "Acme", AdminID: 7}
	portals.On("GetByID", mock.Anything, int64(3)).Return(acme, nil)
	portals.On("GetByID", mock.Anything, int64(4)).Return(nil, gorm.ErrRecordNotFound)
	services.On("List", mock.Anything, repository.ServiceFilter{PortalID: &acme.ID}).Return([]domain.Service{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10"), IsActive: true},
	}, nil)

	detail, err := svc.View(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, detail.Services, 1)
	assert.Equal(t, "10.00", detail.Services[0].Price)

	_, err = svc.View(context.Background(), 8, 3)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.View(context.Background(), 7, 4)
	assert.ErrorIs(t, err, ErrPortalNotFound)
}

func TestService_Update(t *testing.T) {
	portals := new(mockPortalRepo)
	svc := NewService(portals, new(mockServiceReader))

	portals.On("GetByID", mock.Anything, int64(3)).Return(&domain.Portal{ID: 3, Name: "Acme Corp", AdminID: 7}, nil)
	portals.On("Rename", mock.Anything, int64(3), int64(7), "Acme Corp").Return(nil)

	p, err := svc.Update(context.Background(), 7, 3, UpdatePortalRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", p.Name)

	_, err = svc.Update(context.Background(), 9, 3, UpdatePortalRequest{Name: "Mine"})
	assert.ErrorIs(t, err, ErrForbidden)
	portals.AssertNumberOfCalls(t, "Rename", 1)
}

func TestService_Delete(t *testing.T) {
	portals := new(mockPortalRepo)
	services := new(mockServiceReader)
	svc := NewService(portals, services)

	portals.On("GetByID", mock.Anything, int64(3)).Return(&domain.Portal{ID: 3, AdminID: 7}, nil)
	portals.On("GetByID", mock.Anything, int64(5)).Return(&domain.Portal{ID: 5, AdminID: 7}, nil)
	services.On("CountByPortal", mock.Anything, int64(3)).Return(int64(2), nil)
	services.On("CountByPortal", mock.Anything, int64(5)).Return(int64(0), nil)
	portals.On("Delete", mock.Anything, int64(5), int64(7)).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), 7, 3), ErrPortalHasServices)
	assert.NoError(t, svc.Delete(context.Background(), 7, 5))
	assert.ErrorIs(t, svc.Delete(context.Background(), 8, 5), ErrForbidden)

	portals.AssertNotCalled(t, "Delete", mock.Anything, int64(3), mock.Anything)
}

func TestService_Delete_ServiceAttachedConcurrently(t *testing.T) {
	portals := new(mockPortalRepo)
	services := new(mockServiceReader)
	svc := NewService(portals, services)

	portals.On("GetByID", mock.Anything, int64(5)).Return(&domain.Portal{ID: 5, AdminID: 7}, nil)
	services.On("CountByPortal", mock.Anything, int64(5)).Return(int64(0), nil)
	portals.On("Delete", mock.Anything, int64(5), int64(7)).Return(errors.New("FOREIGN KEY constraint failed"))

	assert.ErrorIs(t, svc.Delete(context.Background(), 7, 5), ErrPortalHasServices)
}

func TestService_Directory_NeverNil(t *testing.T) {
	portals := new(mockPortalRepo)
	portals.On("Directory", mock.Anything).Return([]repository.PortalRef(nil), nil)

	refs, err := NewService(portals, new(mockServiceReader)).Directory(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}
