package repository

import (
	"context"
	"time"

	"crmportal/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// AdminOrderFilter narrows the admin order list. PortalID must already be
// checked for ownership by the caller.
type AdminOrderFilter struct {
	AdminID  int64
	PortalID *int64
}

// StatusTotals aggregates orders by status. Revenue sums delivered orders.
type StatusTotals struct {
	Counts  map[domain.OrderStatus]int64
	Revenue decimal.Decimal
}

type orderLineRow struct {
	ID            int64
	OrderDate     time.Time
	Status        string
	TotalAmount   decimal.Decimal
	Quantity      int
	CustomerID    int64
	ServiceID     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ServiceName   string
	PortalID      *int64
	PortalName    *string
	PortalAdminID *int64
	CustomerName  string
}

func (row orderLineRow) toDomain() domain.OrderLine {
	return domain.OrderLine{
		Order: domain.Order{
			ID:          row.ID,
			OrderDate:   row.OrderDate,
			Status:      domain.OrderStatus(row.Status),
			TotalAmount: row.TotalAmount,
			Quantity:    row.Quantity,
			CustomerID:  row.CustomerID,
			ServiceID:   row.ServiceID,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		},
		ServiceName:   row.ServiceName,
		PortalID:      row.PortalID,
		PortalName:    row.PortalName,
		PortalAdminID: row.PortalAdminID,
		CustomerName:  row.CustomerName,
	}
}

func (r *OrderRepository) lines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id, orders.order_date, orders.status, orders.total_amount, orders.quantity,
			orders.customer_id, orders.service_id, orders.created_at, orders.updated_at,
			services.name AS service_name, services.portal_id AS portal_id, portals.name AS portal_name, portals.admin_id AS portal_admin_id,
			TRIM(COALESCE(customers.first_name, '') || ' ' || COALESCE(customers.last_name, '')) AS customer_name`).
		Joins("JOIN services ON services.id = orders.service_id").
		Joins("LEFT JOIN portals ON portals.id = services.portal_id").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
}

func scanLines(q *gorm.DB) ([]domain.OrderLine, error) {
	var rows []orderLineRow
	if err := q.Order("orders.order_date DESC, orders.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.OrderLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetLine(ctx context.Context, id int64) (*domain.OrderLine, error) {
	var rows []orderLineRow
	if err := r.lines(ctx).Where("orders.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	line := rows[0].toDomain()
	return &line, nil
}

// ListByCustomer returns the customer's orders, newest first. limit <= 0
// means no limit.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.OrderLine, error) {
	q := r.lines(ctx).Where("orders.customer_id = ?", customerID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return scanLines(q)
}

// ListForAdmin returns orders whose service belongs to a portal the admin owns
// or to no portal.
func (r *OrderRepository) ListForAdmin(ctx context.Context, f AdminOrderFilter) ([]domain.OrderLine, error) {
	q := r.lines(ctx).Where("(portals.admin_id = ? OR services.portal_id IS NULL)", f.AdminID)
	if f.PortalID != nil {
		q = q.Where("services.portal_id = ?", *f.PortalID)
	}
	return scanLines(q)
}

// UpdateQuantity stores a new quantity together with its recomputed total.
func (r *OrderRepository) UpdateQuantity(ctx context.Context, id int64, quantity int, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":     quantity,
			"total_amount": total,
		}).Error
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) CountByService(ctx context.Context, serviceID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("service_id = ?", serviceID).Count(&n).Error
	return n, err
}

type statusAmountRow struct {
	Status      string
	TotalAmount decimal.Decimal
}

func totals(rows []statusAmountRow) StatusTotals {
	t := StatusTotals{Counts: map[domain.OrderStatus]int64{}, Revenue: decimal.Zero}
	for _, row := range rows {
		status := domain.OrderStatus(row.Status)
		t.Counts[status]++
		if status == domain.OrderDelivered {
			t.Revenue = t.Revenue.Add(row.TotalAmount)
		}
	}
	return t
}

// TotalsForAdmin sums in Go so revenue stays exact on every backend.
func (r *OrderRepository) TotalsForAdmin(ctx context.Context, adminID int64) (StatusTotals, error) {
	var rows []statusAmountRow
	err := r.db.WithContext(ctx).Table("orders").
		Select("orders.status, orders.total_amount").
		Joins("JOIN services ON services.id = orders.service_id").
		Joins("JOIN portals ON portals.id = services.portal_id").
		Where("portals.admin_id = ?", adminID).
		Scan(&rows).Error
	if err != nil {
		return StatusTotals{}, err
	}
	return totals(rows), nil
}

func (r *OrderRepository) TotalsForCustomer(ctx context.Context, customerID int64) (StatusTotals, error) {
	var rows []statusAmountRow
	err := r.db.WithContext(ctx).Table("orders").
		Select("status, total_amount").
		Where("customer_id = ?", customerID).
		Scan(&rows).Error
	if err != nil {
		return StatusTotals{}, err
	}
	return totals(rows), nil
}
