package account

import (
	"context"
	"errors"
	"testing"

	"crmportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

func (m *mockAdminRepo) UpdateProfile(ctx context.Context, a *domain.Administrator) error {
	return m.Called(ctx, a).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func str(v string) *string { return &v }

func TestService_Get_ByRole(t *testing.T) {
	admins, customers := new(mockAdminRepo), new(mockCustomerRepo)
	svc := NewService(admins, customers)
	admins.On("GetByID", mock.Anything, int64(7)).Return(&domain.Administrator{ID: 7, Username: "admin1"}, nil)
	customers.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	p, err := svc.Get(context.Background(), domain.AdminPrincipal(1, "a@x.com", 7))
	require.NoError(t, err)
	assert.Equal(t, "admin1", p.Admin.Username)
	assert.Nil(t, p.Customer)

	_, err = svc.Get(context.Background(), domain.CustomerPrincipal(2, "c@x.com", 9))
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Get(context.Background(), domain.AnonymousPrincipal(3, "e@x.com"))
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_Update_AdminKeepsOmittedFields(t *testing.T) {
	admins, customers := new(mockAdminRepo), new(mockCustomerRepo)
	svc := NewService(admins, customers)
	admins.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Administrator{ID: 7, Username: "admin1", Email: "a@x.com", Phone: "111"}, nil)
	admins.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(a *domain.Administrator) bool {
		return a.Username == "admin1" && a.Phone == "222" && a.Email == "a@x.com"
	})).Return(nil)

	p, err := svc.Update(context.Background(), domain.AdminPrincipal(1, "a@x.com", 7), UpdateRequest{
		Phone:     str(" 222 "),
		FirstName: str("ignored"),
	})
	require.NoError(t, err)
	assert.Equal(t, "222", p.Admin.Phone)
	admins.AssertExpectations(t)
	customers.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestService_Update_UsernameClash(t *testing.T) {
	admins, customers := new(mockAdminRepo), new(mockCustomerRepo)
	svc := NewService(admins, customers)
	admins.On("GetByID", mock.Anything, int64(7)).Return(&domain.Administrator{ID: 7, Username: "admin1"}, nil)
	admins.On("UpdateProfile", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: administrators.username"))

	_, err := svc.Update(context.Background(), domain.AdminPrincipal(1, "a@x.com", 7), UpdateRequest{Username: str("admin2")})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Update_Customer(t *testing.T) {
	admins, customers := new(mockAdminRepo), new(mockCustomerRepo)
	svc := NewService(admins, customers)
	customers.On("GetByID", mock.Anything, int64(9)).
		Return(&domain.Customer{ID: 9, FirstName: "John", LastName: "Doe", City: "Springfield"}, nil)
	customers.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.FirstName == "John" && c.City == "Shelbyville" && c.ZipCode == "12345"
	})).Return(nil)

	p, err := svc.Update(context.Background(), domain.CustomerPrincipal(2, "c@x.com", 9), UpdateRequest{
		City:     str("Shelbyville"),
		ZipCode:  str("12345"),
		Username: str("ignored"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Doe", p.Customer.LastName)
	customers.AssertExpectations(t)
}

func TestService_Update_RejectsBlankNames(t *testing.T) {
	admins, customers := new(mockAdminRepo), new(mockCustomerRepo)
	svc := NewService(admins, customers)
	admins.On("GetByID", mock.Anything, int64(7)).Return(&domain.Administrator{ID: 7, Username: "admin1"}, nil)
	customers.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9, FirstName: "John", LastName: "Doe"}, nil)

	admin := domain.AdminPrincipal(1, "a@x.com", 7)
	_, err := svc.Update(context.Background(), admin, UpdateRequest{Username: str("   ")})
	assert.ErrorIs(t, err, ErrBlankField)
	// passes min=3 before trimming
	_, err = svc.Update(context.Background(), admin, UpdateRequest{Username: str("  ab  ")})
	assert.ErrorIs(t, err, ErrBlankField)

	customer := domain.CustomerPrincipal(2, "c@x.com", 9)
	_, err = svc.Update(context.Background(), customer, UpdateRequest{FirstName: str(" ")})
	assert.ErrorIs(t, err, ErrBlankField)
	_, err = svc.Update(context.Background(), customer, UpdateRequest{LastName: str("\t")})
	assert.ErrorIs(t, err, ErrBlankField)

	admins.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}
