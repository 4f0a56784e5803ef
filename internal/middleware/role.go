package middleware

import (
	"context"
	"errors"
	"net/http"

	"crmportal/internal/domain"
	"crmportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const ctxPrincipal = "principal"

type PrincipalResolver interface {
	Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error)
}

// ResolvePrincipal runs after JWTAuth and stores the resolved principal on
// the request. Handlers read it with CurrentPrincipal.
func ResolvePrincipal(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := resolver.Resolve(c.Request.Context(), CurrentIdentity(c))
		if err != nil {
			_ = c.Error(err)
			if errors.Is(err, context.Canceled) {
				c.Abort()
				return
			}
			response.Abort(c, http.StatusInternalServerError, "PRINCIPAL_RESOLUTION_FAILED", "Failed to resolve user role")
			return
		}

		c.Set(ctxPrincipal, p)
		c.Next()
	}
}

// RequirePrincipal rejects requests whose principal is not one of kinds.
func RequirePrincipal(kinds ...domain.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principalFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		if !p.Is(kinds...) {
			response.Abort(c, http.StatusForbidden, "WRONG_ROLE", "Access denied for your role")
			return
		}

		c.Next()
	}
}

// AdminOnly requires an administrator principal.
func AdminOnly() gin.HandlerFunc {
	return RequirePrincipal(domain.PrincipalAdmin)
}

// CustomerOnly requires a customer principal.
func CustomerOnly() gin.HandlerFunc {
	return RequirePrincipal(domain.PrincipalCustomer)
}

// CurrentPrincipal returns the resolved principal, or Anonymous when none was
// resolved for the request.
func CurrentPrincipal(c *gin.Context) domain.Principal {
	if p, ok := principalFrom(c); ok {
		return p
	}
	id := CurrentIdentity(c)
	return domain.AnonymousPrincipal(id.AccountID, id.Email)
}

func principalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
