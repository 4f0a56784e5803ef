package dashboard

import (
	"time"

	"crmportal/internal/domain"
	"crmportal/internal/repository"
)

// RecentOrdersLimit bounds the order list on the customer dashboard.
const RecentOrdersLimit = 5

// StatusCounts always carries every status, zero when no order has it.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Shipped   int64 `json:"shipped"`
	Delivered int64 `json:"delivered"`
	Total     int64 `json:"total"`
}

type AdminDashboard struct {
	Admin        *domain.Administrator `json:"admin"`
	PortalCount  int64                 `json:"portal_count"`
	ServiceCount int64                 `json:"service_count"`
	Orders       StatusCounts          `json:"orders"`
	Revenue      string                `json:"revenue"`
}

type RecentOrder struct {
	ID          int64              `json:"id"`
	OrderDate   time.Time          `json:"order_date"`
	Status      domain.OrderStatus `json:"status"`
	ServiceName string             `json:"service_name"`
	Quantity    int                `json:"quantity"`
	TotalAmount string             `json:"total_amount"`
}

type CustomerDashboard struct {
	Customer     *domain.Customer `json:"customer"`
	Orders       StatusCounts     `json:"orders"`
	RecentOrders []RecentOrder    `json:"recent_orders"`
}

func toStatusCounts(t repository.StatusTotals) StatusCounts {
	sc := StatusCounts{
		Pending:   t.Counts[domain.OrderPending],
		Shipped:   t.Counts[domain.OrderShipped],
		Delivered: t.Counts[domain.OrderDelivered],
	}
	for _, n := range t.Counts {
		sc.Total += n
	}
	return sc
}

func toRecentOrders(lines []domain.OrderLine) []RecentOrder {
	out := make([]RecentOrder, 0, len(lines))
	for _, l := range lines {
		out = append(out, RecentOrder{
			ID:          l.ID,
			OrderDate:   l.OrderDate,
			Status:      l.Status,
			ServiceName: l.ServiceName,
			Quantity:    l.Quantity,
			TotalAmount: l.TotalAmount.StringFixed(domain.MoneyScale),
		})
	}
	return out
}
