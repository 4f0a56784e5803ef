package cache

import (
	"context"
	"errors"
	"time"

	"crmportal/internal/domain"
)

// ErrMiss is returned by Get when nothing is cached under the key.
var ErrMiss = errors.New("cache miss")

// PrincipalStore caches resolved principals by session id.
type PrincipalStore interface {
	Get(ctx context.Context, sessionID string) (domain.Principal, error)
	Set(ctx context.Context, sessionID string, p domain.Principal, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

func principalKey(sessionID string) string {
	return "principal:" + sessionID
}
