package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

var (
	ErrInvalidQuantity         = errors.New("quantity must be a whole number of at least 1")
	ErrInvalidPrice            = errors.New("price must be a non-negative amount")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// MoneyScale is the number of fractional digits stored for amounts.
const MoneyScale = 2

type Order struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null;index"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	CustomerID  int64           `json:"customer_id" gorm:"index;not null"`
	ServiceID   int64           `json:"service_id" gorm:"index;not null"`
	Service     *Service        `json:"-" gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderTotal is the single place an order amount is computed: price times
// quantity, rounded half away from zero to MoneyScale places.
func OrderTotal(price decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale), nil
}

// NormalizePrice validates a catalog price and rounds it to MoneyScale.
func NormalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price.Round(MoneyScale), nil
}

// CompleteStatus returns the status after marking an order complete and
// whether anything changed. Only pending moves to delivered; delivered is
// already complete.
func CompleteStatus(current OrderStatus) (OrderStatus, bool, error) {
	switch current {
	case OrderPending:
		return OrderDelivered, true, nil
	case OrderDelivered:
		return OrderDelivered, false, nil
	default:
		return current, false, ErrInvalidStatusTransition
	}
}

// Editable reports whether the order's quantity can still change.
func (o *Order) Editable() bool {
	return o.Status == OrderPending
}

// OrderLine is an order joined with the names a list view shows.
type OrderLine struct {
	Order
	ServiceName  string  `json:"service_name"`
	PortalID     *int64  `json:"portal_id,omitempty"`
	PortalName   *string `json:"portal_name,omitempty"`
	CustomerName string  `json:"customer_name"`
	// owner of the service's portal, nil for unscoped services
	PortalAdminID *int64 `json:"-"`
}

// ManagedBy reports whether adminID may manage the order: the admin owns the
// service's portal, or the service belongs to no portal at all.
func (l *OrderLine) ManagedBy(adminID int64) bool {
	if l.PortalID == nil {
		return true
	}
	return l.PortalAdminID != nil && *l.PortalAdminID == adminID
}
