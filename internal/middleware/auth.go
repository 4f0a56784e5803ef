package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"crmportal/internal/domain"
	"crmportal/internal/pkg/jwt"
	"crmportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ctxAccountID        = "account_id"
	ctxEmail            = "email"
	ctxSessionID        = "session_id"
	ctxSessionExpiresAt = "session_expires_at"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// SessionLookup loads the session a token points at.
type SessionLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
}

// JWTAuth accepts a bearer token only while its session is live.
func JWTAuth(tokens TokenValidator, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		session, err := sessions.GetByID(c.Request.Context(), claims.SessionID())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Abort(c, http.StatusUnauthorized, "SESSION_REVOKED", "Session is no longer valid")
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
			return
		}
		if session.AccountID != claims.AccountID || !session.Active(time.Now()) {
			response.Abort(c, http.StatusUnauthorized, "SESSION_REVOKED", "Session is no longer valid")
			return
		}

		c.Set(ctxAccountID, claims.AccountID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxSessionID, session.ID)
		c.Set(ctxSessionExpiresAt, session.ExpiresAt)
		c.Next()
	}
}

// CurrentIdentity returns what JWTAuth stored for the request.
func CurrentIdentity(c *gin.Context) domain.Identity {
	return domain.Identity{
		AccountID: c.GetInt64(ctxAccountID),
		Email:     c.GetString(ctxEmail),
		SessionID: c.GetString(ctxSessionID),
		ExpiresAt: c.GetTime(ctxSessionExpiresAt),
	}
}
