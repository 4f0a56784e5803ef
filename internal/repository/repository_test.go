package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crmportal/internal/database"
	"crmportal/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	adminA, adminB *domain.Administrator
	customer       *domain.Customer
	acme, other    *domain.Portal
	widget, loose  *domain.Service
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	portals := NewPortalRepository(db)
	services := NewServiceRepository(db)

	f := fixture{
		adminA:   &domain.Administrator{Username: "a", Email: "a@x.com", Role: domain.AdminRoleAdmin},
		adminB:   &domain.Administrator{Username: "b", Email: "b@x.com", Role: domain.AdminRoleAdmin},
		customer: &domain.Customer{FirstName: "Jane", LastName: "Smith", Email: "c@x.com"},
	}
	require.NoError(t, accounts.CreateWithRole(ctx, &domain.Account{Email: "A@x.com", PasswordHash: "h"}, f.adminA))
	require.NoError(t, accounts.CreateWithRole(ctx, &domain.Account{Email: "b@x.com", PasswordHash: "h"}, f.adminB))
	require.NoError(t, accounts.CreateWithRole(ctx, &domain.Account{Email: "c@x.com", PasswordHash: "h"}, f.customer))

	f.acme = &domain.Portal{Name: "Acme", AdminID: f.adminA.ID}
	f.other = &domain.Portal{Name: "Beta", AdminID: f.adminB.ID}
	require.NoError(t, portals.Create(ctx, f.acme))
	require.NoError(t, portals.Create(ctx, f.other))

	f.widget = &domain.Service{Name: "Widget", Description: "w", Price: decimal.RequireFromString("10.00"), PortalID: &f.acme.ID, IsActive: true}
	f.loose = &domain.Service{Name: "Audit", Description: "a", Price: decimal.RequireFromString("5.50"), IsActive: false}
	require.NoError(t, services.Create(ctx, f.widget))
	require.NoError(t, services.Create(ctx, f.loose))
	return f
}

func TestAccountRepository_CreateWithRole(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	accounts := NewAccountRepository(db)

	acc, err := accounts.GetByEmail(ctx, " a@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.Equal(t, acc.ID, f.adminA.AccountID)

	// duplicate role row rolls the account back
	err = accounts.CreateWithRole(ctx, &domain.Account{Email: "new@x.com", PasswordHash: "h"},
		&domain.Administrator{Username: "a", Email: "new@x.com"})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	_, err = accounts.GetByEmail(ctx, "new@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPortalRepository_Ownership(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	portals := NewPortalRepository(db)

	list, err := portals.ListByAdmin(ctx, f.adminA.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)

	list, err = portals.ListByAdmin(ctx, f.adminB.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beta", list[0].Name)

	assert.ErrorIs(t, portals.Rename(ctx, f.acme.ID, f.adminB.ID, "Stolen"), gorm.ErrRecordNotFound)
	require.NoError(t, portals.Rename(ctx, f.acme.ID, f.adminA.ID, "Acme Corp"))

	dir, err := portals.Directory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PortalRef{{ID: f.acme.ID, Name: "Acme Corp"}, {ID: f.other.ID, Name: "Beta"}}, dir)

	assert.ErrorIs(t, portals.Delete(ctx, f.other.ID, f.adminA.ID), gorm.ErrRecordNotFound)
	require.NoError(t, portals.Delete(ctx, f.other.ID, f.adminB.ID))

	n, err := portals.CountByAdmin(ctx, f.adminB.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestServiceRepository_ListAndCount(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	services := NewServiceRepository(db)

	all, err := services.List(ctx, ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Audit", all[0].Name)
	assert.True(t, all[1].Price.Equal(decimal.RequireFromString("10")))

	active, err := services.List(ctx, ServiceFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Widget", active[0].Name)

	scoped, err := services.List(ctx, ServiceFilter{PortalID: &f.other.ID})
	require.NoError(t, err)
	assert.Empty(t, scoped)

	n, err := services.CountByPortal(ctx, f.acme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = services.CountByAdmin(ctx, f.adminA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	f.loose.IsActive = true
	f.loose.Price = decimal.RequireFromString("7.25")
	require.NoError(t, services.Update(ctx, f.loose))
	got, err := services.GetByID(ctx, f.loose.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, "7.25", got.Price.StringFixed(2))
}

func TestOrderRepository_LinesAndTotals(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	orders := NewOrderRepository(db)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	older := &domain.Order{OrderDate: base, Status: domain.OrderDelivered, TotalAmount: decimal.RequireFromString("20.00"), Quantity: 2, CustomerID: f.customer.ID, ServiceID: f.widget.ID}
	newer := &domain.Order{OrderDate: base.Add(time.Hour), Status: domain.OrderPending, TotalAmount: decimal.RequireFromString("30.00"), Quantity: 3, CustomerID: f.customer.ID, ServiceID: f.widget.ID}
	loose := &domain.Order{OrderDate: base.Add(2 * time.Hour), Status: domain.OrderDelivered, TotalAmount: decimal.RequireFromString("5.50"), Quantity: 1, CustomerID: f.customer.ID, ServiceID: f.loose.ID}
	for _, o := range []*domain.Order{older, newer, loose} {
		require.NoError(t, orders.Create(ctx, o))
	}

	mine, err := orders.ListByCustomer(ctx, f.customer.ID, 0)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []int64{loose.ID, newer.ID, older.ID}, []int64{mine[0].ID, mine[1].ID, mine[2].ID})
	assert.Equal(t, "Widget", mine[1].ServiceName)
	assert.Equal(t, "Jane Smith", mine[1].CustomerName)
	assert.Nil(t, mine[0].PortalName)

	recent, err := orders.ListByCustomer(ctx, f.customer.ID, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	adminLines, err := orders.ListForAdmin(ctx, AdminOrderFilter{AdminID: f.adminA.ID})
	require.NoError(t, err)
	require.Len(t, adminLines, 3)
	assert.Equal(t, loose.ID, adminLines[0].ID)
	assert.Nil(t, adminLines[0].PortalID)
	require.NotNil(t, adminLines[1].PortalName)
	assert.Equal(t, "Acme", *adminLines[1].PortalName)

	filtered, err := orders.ListForAdmin(ctx, AdminOrderFilter{AdminID: f.adminA.ID, PortalID: ptr(f.acme.ID)})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	filtered, err = orders.ListForAdmin(ctx, AdminOrderFilter{AdminID: f.adminA.ID, PortalID: ptr(f.other.ID)})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	// orders on a portal-less service are shared by every admin
	other, err := orders.ListForAdmin(ctx, AdminOrderFilter{AdminID: f.adminB.ID})
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, loose.ID, other[0].ID)
	assert.True(t, other[0].ManagedBy(f.adminB.ID))

	totals, err := orders.TotalsForAdmin(ctx, f.adminA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Counts[domain.OrderPending])
	assert.Equal(t, int64(1), totals.Counts[domain.OrderDelivered])
	assert.Equal(t, "20.00", totals.Revenue.StringFixed(2))

	ctotals, err := orders.TotalsForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ctotals.Counts[domain.OrderDelivered])
	assert.Equal(t, "25.50", ctotals.Revenue.StringFixed(2))

	require.NoError(t, orders.UpdateQuantity(ctx, newer.ID, 4, decimal.RequireFromString("40.00")))
	require.NoError(t, orders.UpdateStatus(ctx, newer.ID, domain.OrderDelivered))
	line, err := orders.GetLine(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, "40.00", line.TotalAmount.StringFixed(2))
	assert.Equal(t, domain.OrderDelivered, line.Status)

	n, err := orders.CountByService(ctx, f.widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, orders.Delete(ctx, newer.ID))
	assert.ErrorIs(t, orders.Delete(ctx, newer.ID), gorm.ErrRecordNotFound)
	_, err = orders.GetLine(ctx, newer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestForeignKeys_RestrictParentDeletes(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	portals := NewPortalRepository(db)
	services := NewServiceRepository(db)
	orders := NewOrderRepository(db)

	err := portals.Delete(ctx, f.acme.ID, f.adminA.ID)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err), err.Error())

	require.NoError(t, orders.Create(ctx, &domain.Order{
		OrderDate: time.Now().UTC(), Status: domain.OrderPending, TotalAmount: decimal.RequireFromString("10.00"),
		Quantity: 1, CustomerID: f.customer.ID, ServiceID: f.widget.ID,
	}))
	err = services.Delete(ctx, f.widget.ID)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err), err.Error())

	_, err = services.GetByID(ctx, f.widget.ID)
	assert.NoError(t, err)

	// an order for a missing service is refused outright
	err = orders.Create(ctx, &domain.Order{
		OrderDate: time.Now().UTC(), Status: domain.OrderPending, TotalAmount: decimal.Zero,
		Quantity: 1, CustomerID: f.customer.ID, ServiceID: 9999,
	})
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestSessionRepository_RevokeAndDeleteStale(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(db)
	now := time.Now().UTC()

	live := &domain.Session{ID: "live", AccountID: 1, ExpiresAt: now.Add(time.Hour)}
	expired := &domain.Session{ID: "expired", AccountID: 1, ExpiresAt: now.Add(-time.Hour)}
	revoked := &domain.Session{ID: "revoked", AccountID: 1, ExpiresAt: now.Add(time.Hour)}
	for _, s := range []*domain.Session{live, expired, revoked} {
		require.NoError(t, sessions.Create(ctx, s))
	}

	require.NoError(t, sessions.Revoke(ctx, "revoked"))
	got, err := sessions.GetByID(ctx, "revoked")
	require.NoError(t, err)
	assert.False(t, got.Active(now))

	n, err := sessions.DeleteStale(ctx, now, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err = sessions.GetByID(ctx, "live")
	require.NoError(t, err)
	assert.True(t, got.Active(now))
}

func TestEmployeeRepository_ListOrdered(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)

	require.NoError(t, accounts.CreateWithRole(ctx, &domain.Account{Email: "z@x.com", PasswordHash: "h"},
		&domain.Employee{FirstName: "Zoe", LastName: "Adams", Email: "z@x.com"}))
	require.NoError(t, accounts.CreateWithRole(ctx, &domain.Account{Email: "m@x.com", PasswordHash: "h"},
		&domain.Employee{FirstName: "Max", LastName: "Brown", Email: "m@x.com"}))

	list, err := NewEmployeeRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Adams", list[0].LastName)
	assert.NotZero(t, list[0].AccountID)
}
