package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portal is a named CRM workspace owned by exactly one administrator.
type Portal struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	AdminID   int64     `json:"admin_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Portal) TableName() string { return "portals" }

// OwnedBy reports whether adminID owns the portal.
func (p *Portal) OwnedBy(adminID int64) bool {
	return p.AdminID == adminID
}

// Service is a sellable catalog item. IsActive has no column default so an
// explicit false is written on insert. A portal cannot be deleted while a
// service still points at it.
type Service struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	PortalID    *int64          `json:"portal_id,omitempty" gorm:"index"`
	Portal      *Portal         `json:"-" gorm:"foreignKey:PortalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	IsActive    bool            `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
