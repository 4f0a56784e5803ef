package order

import (
	"time"

	"crmportal/internal/domain"
)

// Quantity is bound as a pointer so 0 reaches the domain check instead of
// failing "required".
type CreateOrderRequest struct {
	ServiceID int64 `json:"service_id" binding:"required,gt=0"`
	Quantity  *int  `json:"quantity" binding:"required"`
}

type UpdateOrderRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ListQuery struct {
	PortalID *int64 `form:"portal_id" binding:"omitempty,gt=0"`
}

type OrderResponse struct {
	ID           int64              `json:"id"`
	OrderDate    time.Time          `json:"order_date"`
	Status       domain.OrderStatus `json:"status"`
	TotalAmount  string             `json:"total_amount"`
	Quantity     int                `json:"quantity"`
	CustomerID   int64              `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	ServiceID    int64              `json:"service_id"`
	ServiceName  string             `json:"service_name"`
	PortalID     *int64             `json:"portal_id,omitempty"`
	PortalName   *string            `json:"portal_name,omitempty"`
}

func toOrderResponse(l *domain.OrderLine) OrderResponse {
	return OrderResponse{
		ID:           l.ID,
		OrderDate:    l.OrderDate,
		Status:       l.Status,
		TotalAmount:  l.TotalAmount.StringFixed(domain.MoneyScale),
		Quantity:     l.Quantity,
		CustomerID:   l.CustomerID,
		CustomerName: l.CustomerName,
		ServiceID:    l.ServiceID,
		ServiceName:  l.ServiceName,
		PortalID:     l.PortalID,
		PortalName:   l.PortalName,
	}
}

func toOrderResponses(lines []domain.OrderLine) []OrderResponse {
	out := make([]OrderResponse, 0, len(lines))
	for i := range lines {
		out = append(out, toOrderResponse(&lines[i]))
	}
	return out
}
