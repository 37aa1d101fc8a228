package registry

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry keeps reservations in process. With a positive ttl a name
// becomes reservable again once its reservation is older than ttl, and
// expired entries are swept at most once per ttl.
type MemoryRegistry struct {
	mu        sync.Mutex
	names     map[string]time.Time
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		names: make(map[string]time.Time),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryRegistry) Reserve(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	if reservedAt, taken := m.names[name]; taken && !m.expired(reservedAt, now) {
		return false, nil
	}
	m.names[name] = now
	return true, nil
}

func (m *MemoryRegistry) Close() error {
	return nil
}

func (m *MemoryRegistry) expired(reservedAt, now time.Time) bool {
	return m.ttl > 0 && now.Sub(reservedAt) >= m.ttl
}

// caller holds mu
func (m *MemoryRegistry) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl {
		return
	}
	for name, reservedAt := range m.names {
		if m.expired(reservedAt, now) {
			delete(m.names, name)
		}
	}
	m.lastSweep = now
}
