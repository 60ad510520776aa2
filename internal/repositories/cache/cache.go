// Package cache provides a redis backed read-through cache for user
// lookups on the hot authentication path.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the cache backend.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient creates a redis client from the configuration.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Service caches users by id with a bounded TTL.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService creates a cache service with the given default TTL.
func NewService(client *redis.Client, ttl time.Duration) *Service {
	return &Service{client: client, ttl: ttl}
}

func userKey(id uuid.UUID) string {
	return "user:id:" + id.String()
}

// GetUser returns the cached user or an error on a miss.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	val, err := s.client.Get(ctx, userKey(id)).Result()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CacheUser stores a user snapshot.
func (s *Service) CacheUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal cached user: %w", err)
	}
	return s.client.Set(ctx, userKey(user.ID), data, s.ttl).Err()
}

// InvalidateUser drops the cached snapshot after a mutation.
func (s *Service) InvalidateUser(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, userKey(id)).Err()
}

// HealthCheck pings the cache backend.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}
