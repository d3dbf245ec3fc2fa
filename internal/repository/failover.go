package repository

import (
	"context"
	"sync/atomic"
	"time"

	"barberbook/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverSlotCache prefers the primary (redis) cache and flips to the
// fallback (memory) when it errors, probing the primary again after a minute.
type FailoverSlotCache struct {
	primary   domain.SlotCache
	fallback  domain.SlotCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSlotCache(primary, fallback domain.SlotCache, logger *zerolog.Logger) *FailoverSlotCache {
	return &FailoverSlotCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSlotCache) GetBookedTimes(ctx context.Context, date string) ([]string, bool, error) {
	if !r.isDown.Load() {
		times, found, err := r.primary.GetBookedTimes(ctx, date)
		if err == nil {
			return times, found, nil
		}
		r.markDown(err)
	}

	if r.shouldProbe() {
		times, found, err := r.primary.GetBookedTimes(ctx, date)
		if err == nil {
			r.isDown.Store(false)
			return times, found, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetBookedTimes(ctx, date)
}

func (r *FailoverSlotCache) SetBookedTimes(ctx context.Context, date string, times []string) error {
	if !r.isDown.Load() {
		if err := r.primary.SetBookedTimes(ctx, date, times); err == nil {
			return nil
		} else {
			r.markDown(err)
		}
	}

	return r.fallback.SetBookedTimes(ctx, date, times)
}

func (r *FailoverSlotCache) Invalidate(ctx context.Context, date string) error {
	// Both layers are invalidated: a stale fallback entry must not survive a
	// primary recovery.
	var primaryErr error
	if !r.isDown.Load() {
		if primaryErr = r.primary.Invalidate(ctx, date); primaryErr != nil {
			r.markDown(primaryErr)
		}
	}

	if err := r.fallback.Invalidate(ctx, date); err != nil {
		return err
	}
	return primaryErr
}

func (r *FailoverSlotCache) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary slot cache failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSlotCache) shouldProbe() bool {
	return r.isDown.Load() && time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute
}
