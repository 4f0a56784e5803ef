package cache

import (
	"context"
	"sync"
	"time"

	"crmportal/internal/domain"
)

type memoryEntry struct {
	principal domain.Principal
	expiresAt time.Time
}

// Memory is an in-process PrincipalStore used when Redis is not configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, sessionID string) (domain.Principal, error) {
	key := principalKey(sessionID)

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return domain.Principal{}, ErrMiss
	}
	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return domain.Principal{}, ErrMiss
	}
	return entry.principal, nil
}

func (m *Memory) Set(_ context.Context, sessionID string, p domain.Principal, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[principalKey(sessionID)] = memoryEntry{principal: p, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, principalKey(sessionID))
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}
