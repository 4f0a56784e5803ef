package auth

import (
	"context"
	"time"

	"crmportal/internal/domain"
	"crmportal/internal/pkg/jwt"
	"crmportal/internal/repository"
)

type AccountRepository interface {
	CreateWithRole(ctx context.Context, acc *domain.Account, role repository.RoleRecord) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
}

type PortalLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Portal, error)
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error)
	Invalidate(ctx context.Context, sessionID string)
}

type TokenService interface {
	GenerateToken(accountID int64, email, sessionID string, expiresAt time.Time) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// SessionNotifier fans session changes out to subscribed clients.
type SessionNotifier interface {
	SignedIn(accountID int64, s SessionView)
	SignedOut(accountID int64, sessionID string)
}
