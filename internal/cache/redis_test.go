package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestSessionRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	created := time.Now().UTC().Add(-time.Minute).Truncate(time.Second)
	session := &models.Session{
		UserID:    "user_alice",
		Token:     "tok_abc",
		ExpiresAt: expires,
		CreatedAt: created,
	}

	if err := c.SetSession(ctx, session); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.GetSession(ctx, "tok_abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("got nil session")
	}
	if got.UserID != "user_alice" || got.Token != "tok_abc" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.ExpiresAt.Equal(expires) || !got.CreatedAt.Equal(created) {
		t.Errorf("timestamps mismatch: %+v", got)
	}
}

func TestGetSessionMissReturnsNilNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetSession(context.Background(), "tok_absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("miss returned %+v, want nil", got)
	}
}

func TestSetSessionClampsTTLToRemainingLifetime(t *testing.T) {
	c, mr := newTestCache(t)

	session := &models.Session{
		UserID:    "user_alice",
		Token:     "tok_short",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := c.SetSession(context.Background(), session); err != nil {
		t.Fatalf("set: %v", err)
	}

	ttl := mr.TTL(sessionKey("tok_short"))
	if ttl <= 0 || ttl > 10*time.Minute {
		t.Errorf("ttl = %v, want within (0, 10m]", ttl)
	}
}

func TestSetSessionSkipsExpired(t *testing.T) {
	c, mr := newTestCache(t)

	session := &models.Session{
		UserID:    "user_alice",
		Token:     "tok_dead",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := c.SetSession(context.Background(), session); err != nil {
		t.Fatalf("set: %v", err)
	}
	if mr.Exists(sessionKey("tok_dead")) {
		t.Error("expired session was cached")
	}
}

func TestDeleteSession(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	session := &models.Session{
		UserID:    "user_alice",
		Token:     "tok_gone",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := c.SetSession(ctx, session); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.DeleteSession(ctx, "tok_gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists(sessionKey("tok_gone")) {
		t.Error("session key survived delete")
	}

	// Deleting a missing token is a no-op.
	if err := c.DeleteSession(ctx, "tok_never"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}
