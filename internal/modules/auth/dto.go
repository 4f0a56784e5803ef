package auth

import (
	"time"

	"crmportal/internal/domain"
)

const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

// SignUpRequest registers an administrator or an employee.
type SignUpRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	UserType   string `json:"user_type" binding:"required,oneof=admin employee"`
	Username   string `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName  string `json:"first_name" validate:"required_if=UserType employee,max=50"`
	LastName   string `json:"last_name" validate:"required_if=UserType employee,max=50"`
	Phone      string `json:"phone" validate:"max=20"`
	Position   string `json:"position" validate:"max=100"`
	Department string `json:"department" validate:"max=100"`
}

type CustomerSignUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required" validate:"max=50"`
	LastName  string `json:"last_name" binding:"required" validate:"max=50"`
	Phone     string `json:"phone" validate:"max=20"`
	Address   string `json:"address" validate:"max=255"`
	City      string `json:"city" validate:"max=50"`
	State     string `json:"state" validate:"max=50"`
	Country   string `json:"country" validate:"max=50"`
	ZipCode   string `json:"zip_code" validate:"max=20"`
	PortalID  *int64 `json:"portal_id" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ClientMeta is stored with a new session.
type ClientMeta struct {
	UserAgent string
	IP        string
}

type AccountView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionView struct {
	ID        string    `json:"id"`
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignUpResult struct {
	Account  AccountView `json:"account"`
	UserType string      `json:"user_type"`
	Profile  any         `json:"profile"`
}

type LoginResult struct {
	Token     string           `json:"token"`
	Session   SessionView      `json:"session"`
	Principal domain.Principal `json:"principal"`
}

type MeResponse struct {
	Account   AccountView      `json:"account"`
	Principal domain.Principal `json:"principal"`
	Session   SessionView      `json:"session"`
}

const (
	EventInitialSession = "initial_session"
	EventSignedIn       = "signed_in"
	EventSignedOut      = "signed_out"
)

// SessionEvent is one frame of the session-change stream. Session is null
// after sign-out.
type SessionEvent struct {
	Event   string       `json:"event"`
	Session *SessionView `json:"session"`
}

func toAccountView(a *domain.Account) AccountView {
	return AccountView{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}
