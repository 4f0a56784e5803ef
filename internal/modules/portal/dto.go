package portal

import (
	"time"

	"crmportal/internal/domain"
)

const maxNameLength = 100

type CreatePortalRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdatePortalRequest struct {
	Name string `json:"name" binding:"required"`
}

type PortalResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	AdminID   int64     `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	IsActive    bool   `json:"is_active"`
}

// PortalDetail is the portal page: the portal and the services attached to it.
type PortalDetail struct {
	Portal   PortalResponse   `json:"portal"`
	Services []ServiceSummary `json:"services"`
}

func toPortalResponse(p *domain.Portal) PortalResponse {
	return PortalResponse{
		ID:        p.ID,
		Name:      p.Name,
		AdminID:   p.AdminID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toServiceSummary(s domain.Service) ServiceSummary {
	return ServiceSummary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(domain.MoneyScale),
		IsActive:    s.IsActive,
	}
}
