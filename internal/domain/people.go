package domain

import "time"

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderator"
)

type Administrator struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AccountID int64     `json:"account_id" gorm:"index"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Role      AdminRole `json:"role" gorm:"type:varchar(20);not null;default:'admin'"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Administrator) TableName() string { return "administrators" }

func (a *Administrator) SetAccountID(id int64) { a.AccountID = id }

type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AccountID int64     `json:"account_id" gorm:"index"`
	FirstName string    `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	City      string    `json:"city" gorm:"type:varchar(50)"`
	State     string    `json:"state" gorm:"type:varchar(50)"`
	Country   string    `json:"country" gorm:"type:varchar(50)"`
	ZipCode   string    `json:"zip_code" gorm:"type:varchar(20)"`
	PortalID  *int64    `json:"portal_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) SetAccountID(id int64) { c.AccountID = id }

// FullName joins first and last name, skipping empty parts.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	AccountID  int64     `json:"account_id" gorm:"index"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName   string    `json:"last_name" gorm:"type:varchar(50);not null"`
	Email      string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"type:varchar(20)"`
	Position   string    `json:"position" gorm:"type:varchar(100)"`
	Department string    `json:"department" gorm:"type:varchar(100)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) SetAccountID(id int64) { e.AccountID = id }
