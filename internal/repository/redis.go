package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barberbook/internal/config"

	"github.com/redis/go-redis/v9"
)

type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSlotCache) GetBookedTimes(ctx context.Context, date string) ([]string, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	key := slotKey(date)
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get booked times from redis: %w", err)
	}

	var times []string
	if err := json.Unmarshal([]byte(val), &times); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal booked times: %w", err)
	}

	return times, true, nil
}

func (r *RedisSlotCache) SetBookedTimes(ctx context.Context, date string, times []string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if times == nil {
		times = []string{}
	}
	data, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("failed to marshal booked times: %w", err)
	}

	if err := r.client.Set(ctx, slotKey(date), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set booked times in redis: %w", err)
	}

	return nil
}

func (r *RedisSlotCache) Invalidate(ctx context.Context, date string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, slotKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate booked times in redis: %w", err)
	}
	return nil
}

func slotKey(date string) string {
	return fmt.Sprintf("booked_times:%s", date)
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
