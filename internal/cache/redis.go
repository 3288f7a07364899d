package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

// SessionCache is a read-through cache for session records, keyed by token.
// A miss returns (nil, nil); the store remains the source of truth and expiry
// is always re-checked by the authenticator.
type SessionCache interface {
	SetSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	Close() error
}

const callTimeout = 2 * time.Second

type RedisCache struct {
	rdb *redis.Client
}

var _ SessionCache = (*RedisCache)(nil)

// NewRedisClient connects using REDIS_URL (required) and REDIS_DB (optional).
func NewRedisClient() (*RedisCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			opts.DB = db
		}
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// NewRedisCache wraps an existing client. Used by tests.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func sessionKey(token string) string {
	return fmt.Sprintf("taskflow:session:%s", token)
}

// SetSession stores the record with a TTL clamped to the session's remaining
// lifetime; already-expired sessions are not cached.
func (c *RedisCache) SetSession(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := msgpack.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return c.rdb.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (c *RedisCache) GetSession(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := msgpack.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
