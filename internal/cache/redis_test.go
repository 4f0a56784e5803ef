package cache

import (
	"context"
	"testing"
	"time"

	"crmportal/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	p := domain.AdminPrincipal(1, "a@x.com", 7)

	_, err := r.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, r.Set(ctx, "s1", p, time.Minute))
	assert.True(t, mr.Exists("principal:s1"))
	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, r.Delete(ctx, "s1"))
	_, err = r.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_Expiry(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "s1", domain.CustomerPrincipal(2, "c@x.com", 3), time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("principal:s1"))

	mr.FastForward(2 * time.Minute)
	_, err := r.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_ZeroTTLNotStored(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "s1", domain.AnonymousPrincipal(1, "x@x.com"), 0))
	assert.False(t, mr.Exists("principal:s1"))
	_, err := r.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_CorruptValue(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, mr.Set("principal:s1", "not json"))
	_, err := r.Get(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
