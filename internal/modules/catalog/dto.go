package catalog

import (
	"time"

	"crmportal/internal/domain"

	"github.com/shopspring/decimal"
)

// Price accepts a JSON number or string and is rounded to cents.
type CreateServiceRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Description string           `json:"description" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	PortalID    *int64           `json:"portal_id" binding:"omitempty,gt=0"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateServiceRequest is a partial update; nil fields keep their value.
type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

type ListQuery struct {
	PortalID *int64 `form:"portal_id" binding:"omitempty,gt=0"`
	Active   bool   `form:"active"`
}

type ServiceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	PortalID    *int64    `json:"portal_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(domain.MoneyScale),
		PortalID:    s.PortalID,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
