package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	times     []string
	expiresAt time.Time
}

// MemorySlotCache is the in-process fallback used when redis is absent or
// unhealthy. Entries honor the same TTL as the redis cache.
type MemorySlotCache struct {
	entries sync.Map
	ttl     time.Duration
}

func NewMemorySlotCache(ttl time.Duration) *MemorySlotCache {
	return &MemorySlotCache{
		ttl: ttl,
	}
}

func (r *MemorySlotCache) GetBookedTimes(ctx context.Context, date string) ([]string, bool, error) {
	val, ok := r.entries.Load(date)
	if !ok {
		return nil, false, nil
	}
	entry := val.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		r.entries.Delete(date)
		return nil, false, nil
	}
	return entry.times, true, nil
}

func (r *MemorySlotCache) SetBookedTimes(ctx context.Context, date string, times []string) error {
	if times == nil {
		times = []string{}
	}
	r.entries.Store(date, &memoryEntry{times: times, expiresAt: time.Now().Add(r.ttl)})
	return nil
}

func (r *MemorySlotCache) Invalidate(ctx context.Context, date string) error {
	r.entries.Delete(date)
	return nil
}
