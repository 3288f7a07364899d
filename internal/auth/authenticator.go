package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/cache"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

var (
	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidSession means the credential matches no stored session.
	ErrInvalidSession = errors.New("invalid session")
	// ErrSessionExpired means the session exists but its expiry has passed.
	ErrSessionExpired = errors.New("session expired")
)

// SessionCookieName is the cookie carrying the bearer token. A cookie takes
// precedence over the Authorization header.
const SessionCookieName = "session_token"

// SessionTTL is the lifetime of a newly provisioned session.
const SessionTTL = 7 * 24 * time.Hour

// Authenticator resolves request credentials to user ids. The cache is
// optional; when present it fronts the store for session lookups, but expiry
// is always re-checked against the record itself.
type Authenticator struct {
	store storage.Store
	cache cache.SessionCache
}

func NewAuthenticator(store storage.Store, sessions cache.SessionCache) *Authenticator {
	return &Authenticator{store: store, cache: sessions}
}

// TokenFromRequest extracts the session token: cookie first, then a Bearer
// Authorization header. Empty string means no credential.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Authenticate maps the request credential to the owning user id. It never
// extends or refreshes the session.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (string, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return "", ErrUnauthenticated
	}

	session, err := a.lookupSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}

	// Expiry at or before the current instant counts as expired. Both sides
	// are normalized to UTC; a stored expiry without zone information is
	// treated as UTC by the store layer.
	now := time.Now().UTC()
	if !session.ExpiresAt.UTC().After(now) {
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}

func (a *Authenticator) lookupSession(ctx context.Context, token string) (*models.Session, error) {
	if a.cache != nil {
		if session, err := a.cache.GetSession(ctx, token); err == nil && session != nil {
			return session, nil
		}
	}

	session, err := a.store.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if a.cache != nil {
		_ = a.cache.SetSession(ctx, session)
	}
	return session, nil
}
