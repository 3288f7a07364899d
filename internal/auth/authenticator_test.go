package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

// fakeSessionCache records hits so tests can tell which path served a lookup.
type fakeSessionCache struct {
	sessions map[string]*models.Session
	gets     int
	sets     int
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionCache) SetSession(_ context.Context, session *models.Session) error {
	f.sets++
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionCache) GetSession(_ context.Context, token string) (*models.Session, error) {
	f.gets++
	return f.sessions[token], nil
}

func (f *fakeSessionCache) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionCache) Close() error { return nil }

func seedSession(t *testing.T, store storage.Store, token string, expiresAt time.Time) {
	t.Helper()
	err := store.CreateSession(context.Background(), &models.Session{
		UserID:    "user_alice",
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func requestWithCookie(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	return r
}

func TestAuthenticateNoCredential(t *testing.T) {
	a := NewAuthenticator(storage.NewMemory(), nil)
	r := httptest.NewRequest(http.MethodGet, "/api/boards", nil)

	if _, err := a.Authenticate(context.Background(), r); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("got %v, want ErrUnauthenticated", err)
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	a := NewAuthenticator(storage.NewMemory(), nil)

	if _, err := a.Authenticate(context.Background(), requestWithCookie("tok_nope")); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("got %v, want ErrInvalidSession", err)
	}
}

func TestAuthenticateExpired(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok_old", time.Now().UTC().Add(-time.Minute))
	a := NewAuthenticator(store, nil)

	if _, err := a.Authenticate(context.Background(), requestWithCookie("tok_old")); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("got %v, want ErrSessionExpired", err)
	}
}

func TestAuthenticateExpiryBoundary(t *testing.T) {
	// An expiry at (or a hair before) now is expired, not valid.
	store := storage.NewMemory()
	seedSession(t, store, "tok_edge", time.Now().UTC())
	a := NewAuthenticator(store, nil)

	if _, err := a.Authenticate(context.Background(), requestWithCookie("tok_edge")); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("got %v, want ErrSessionExpired", err)
	}
}

func TestAuthenticateValid(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok_good", time.Now().UTC().Add(time.Hour))
	a := NewAuthenticator(store, nil)

	userID, err := a.Authenticate(context.Background(), requestWithCookie("tok_good"))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if userID != "user_alice" {
		t.Errorf("user id = %q, want user_alice", userID)
	}
}

func TestTokenFromRequestCookieBeatsHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from_cookie"})
	r.Header.Set("Authorization", "Bearer from_header")

	if got := TokenFromRequest(r); got != "from_cookie" {
		t.Errorf("token = %q, want from_cookie", got)
	}
}

func TestTokenFromRequestBearerFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	r.Header.Set("Authorization", "Bearer from_header")

	if got := TokenFromRequest(r); got != "from_header" {
		t.Errorf("token = %q, want from_header", got)
	}
}

func TestAuthenticateCacheBackfillAndHit(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok_good", time.Now().UTC().Add(time.Hour))
	sessions := newFakeSessionCache()
	a := NewAuthenticator(store, sessions)
	ctx := context.Background()

	// First lookup misses the cache, hits the store, and backfills.
	if _, err := a.Authenticate(ctx, requestWithCookie("tok_good")); err != nil {
		t.Fatalf("first authenticate: %v", err)
	}
	if sessions.sets != 1 {
		t.Errorf("cache sets = %d, want 1", sessions.sets)
	}

	// Second lookup is served from the cache even if the store forgets.
	if err := store.DeleteSession(ctx, "tok_good"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	userID, err := a.Authenticate(ctx, requestWithCookie("tok_good"))
	if err != nil {
		t.Fatalf("cached authenticate: %v", err)
	}
	if userID != "user_alice" {
		t.Errorf("user id = %q, want user_alice", userID)
	}
}

func TestAuthenticateCachedExpiredSessionStillRejected(t *testing.T) {
	// Expiry is enforced on every request, not at cache-write time.
	sessions := newFakeSessionCache()
	sessions.sessions["tok_stale"] = &models.Session{
		UserID:    "user_alice",
		Token:     "tok_stale",
		ExpiresAt: time.Now().UTC().Add(-time.Second),
	}
	a := NewAuthenticator(storage.NewMemory(), sessions)

	if _, err := a.Authenticate(context.Background(), requestWithCookie("tok_stale")); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("got %v, want ErrSessionExpired", err)
	}
}
