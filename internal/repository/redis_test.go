package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSlotCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	cache := NewRedisSlotCache(client, time.Minute)
	ctx := context.Background()

	t.Run("SetAndGetBookedTimes", func(t *testing.T) {
		err := cache.SetBookedTimes(ctx, "2025-12-01", []string{"10:00", "15:30"})
		require.NoError(t, err)

		times, found, err := cache.GetBookedTimes(ctx, "2025-12-01")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{"10:00", "15:30"}, times)
	})

	t.Run("MissingDate", func(t *testing.T) {
		times, found, err := cache.GetBookedTimes(ctx, "2030-01-01")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, times)
	})

	t.Run("EmptyDayIsCached", func(t *testing.T) {
		err := cache.SetBookedTimes(ctx, "2025-12-02", nil)
		require.NoError(t, err)

		times, found, err := cache.GetBookedTimes(ctx, "2025-12-02")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, times)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, cache.SetBookedTimes(ctx, "2025-12-03", []string{"11:00"}))
		require.NoError(t, cache.Invalidate(ctx, "2025-12-03"))

		_, found, err := cache.GetBookedTimes(ctx, "2025-12-03")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("EntryExpires", func(t *testing.T) {
		require.NoError(t, cache.SetBookedTimes(ctx, "2025-12-04", []string{"12:00"}))
		s.FastForward(2 * time.Minute)

		_, found, err := cache.GetBookedTimes(ctx, "2025-12-04")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestPing(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	s.Close()
	assert.Error(t, Ping(context.Background(), client))
}
