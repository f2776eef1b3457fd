package sanitize

import (
	"context"
	"sync"
	"time"
)

// Store tracks sanitized payloads for TTL-based secure erasure. Sanitized
// data is registered at ingress and purged either explicitly by tracking id
// or by a periodic Sweep driven from an external scheduler.
type Store interface {
	Register(ctx context.Context, trackingID string, data map[string]any) error
	Release(ctx context.Context, trackingID string) (bool, error)
	Sweep(ctx context.Context) (int, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Stats describes the registry state for the sanitization status report.
type Stats struct {
	TotalEntries   int       `json:"total_entries"`
	ActiveEntries  int       `json:"active_entries"`
	ExpiredEntries int       `json:"expired_entries"`
	CleanupNeeded  bool      `json:"cleanup_needed"`
	Timestamp      time.Time `json:"report_timestamp"`
}

type entry struct {
	data      map[string]any
	createdAt time.Time
	expiresAt time.Time
}

// MemoryStore is the in-process registry: a map guarded by a mutex, safe
// for concurrent request handlers. A registration racing with a Sweep lands
// either before or after it, never partially.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory tracking registry with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Register stores a sanitized payload under a tracking id.
func (s *MemoryStore) Register(_ context.Context, trackingID string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[trackingID] = &entry{
		data:      data,
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

// Release securely erases and removes a single entry. It reports whether
// the tracking id existed.
func (s *MemoryStore) Release(_ context.Context, trackingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[trackingID]
	if !ok {
		return false, nil
	}

	secureErase(e.data)
	delete(s.entries, trackingID)
	return true, nil
}

// Sweep removes every expired entry and returns the count. Expired keys are
// snapshotted and deleted under the same lock.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []string
	for id, e := range s.entries {
		if !e.expiresAt.After(now) {
			expired = append(expired, id)
		}
	}

	for _, id := range expired {
		secureErase(s.entries[id].data)
		delete(s.entries, id)
	}

	return len(expired), nil
}

// Stats reports registry occupancy.
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := Stats{Timestamp: now}
	for _, e := range s.entries {
		stats.TotalEntries++
		if e.expiresAt.After(now) {
			stats.ActiveEntries++
		} else {
			stats.ExpiredEntries++
		}
	}
	stats.CleanupNeeded = stats.ExpiredEntries > 0

	return stats, nil
}

// Close releases the store. The memory store has nothing to release.
func (s *MemoryStore) Close() error {
	return nil
}

// secureErase overwrites string values in place before the entry is
// dropped, so sanitized payloads do not linger in reachable memory.
func secureErase(data map[string]any) {
	for key, value := range data {
		data[key] = eraseValue(value)
	}
}

func eraseValue(value any) any {
	switch v := value.(type) {
	case string:
		return zeroString(len(v))
	case map[string]any:
		secureErase(v)
		return v
	case []any:
		for i, item := range v {
			v[i] = eraseValue(item)
		}
		return v
	case []string:
		for i, item := range v {
			v[i] = zeroString(len(item))
		}
		return v
	default:
		return value
	}
}

func zeroString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
