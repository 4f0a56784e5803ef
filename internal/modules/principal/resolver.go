package principal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"crmportal/internal/cache"
	"crmportal/internal/domain"

	"gorm.io/gorm"
)

// Resolver maps an authenticated identity to exactly one principal kind.
// Administrators take precedence over customers.
type Resolver struct {
	admins    AdminFinder
	customers CustomerFinder
	cache     cache.PrincipalStore
	ttl       time.Duration
	now       func() time.Time
}

func NewResolver(admins AdminFinder, customers CustomerFinder, store cache.PrincipalStore, ttl time.Duration) *Resolver {
	return &Resolver{
		admins:    admins,
		customers: customers,
		cache:     store,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (r *Resolver) Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error) {
	if r.cache != nil && id.SessionID != "" {
		p, err := r.cache.Get(ctx, id.SessionID)
		if err == nil && p.AccountID == id.AccountID {
			return p, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			log.Printf("principal_cache_error op=get session_id=%s error=%q", id.SessionID, err.Error())
		}
	}

	p, err := r.lookup(ctx, id)
	if err != nil {
		return domain.Principal{}, err
	}

	if r.cache != nil && id.SessionID != "" {
		if err := r.cache.Set(ctx, id.SessionID, p, r.cacheTTL(id)); err != nil {
			log.Printf("principal_cache_error op=set session_id=%s error=%q", id.SessionID, err.Error())
		}
	}
	return p, nil
}

// Invalidate drops the cached principal of a session.
func (r *Resolver) Invalidate(ctx context.Context, sessionID string) {
	if r.cache == nil || sessionID == "" {
		return
	}
	if err := r.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("principal_cache_error op=delete session_id=%s error=%q", sessionID, err.Error())
	}
}

func (r *Resolver) lookup(ctx context.Context, id domain.Identity) (domain.Principal, error) {
	admin, err := r.admins.GetByEmail(ctx, id.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Principal{}, fmt.Errorf("%w: administrators: %v", ErrResolveFailed, err)
	}

	customer, err := r.customers.GetByEmail(ctx, id.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Principal{}, fmt.Errorf("%w: customers: %v", ErrResolveFailed, err)
	}

	switch {
	case admin != nil && customer != nil:
		log.Printf("principal_dual_membership account_id=%d email=%s admin_id=%d customer_id=%d resolved=admin",
			id.AccountID, id.Email, admin.ID, customer.ID)
		return domain.AdminPrincipal(id.AccountID, id.Email, admin.ID), nil
	case admin != nil:
		return domain.AdminPrincipal(id.AccountID, id.Email, admin.ID), nil
	case customer != nil:
		return domain.CustomerPrincipal(id.AccountID, id.Email, customer.ID), nil
	default:
		return domain.AnonymousPrincipal(id.AccountID, id.Email), nil
	}
}

func (r *Resolver) cacheTTL(id domain.Identity) time.Duration {
	ttl := r.ttl
	if !id.ExpiresAt.IsZero() {
		if left := id.ExpiresAt.Sub(r.now()); ttl <= 0 || left < ttl {
			ttl = left
		}
	}
	return ttl
}
