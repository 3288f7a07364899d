package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sashafierce98/TGPTaskflow/internal/cache"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/services"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
	"github.com/sashafierce98/TGPTaskflow/internal/web"
)

// SessionExchanger resolves an upstream session id to user identity and a
// bearer token. Satisfied by services.SessionDataClient.
type SessionExchanger interface {
	Exchange(ctx context.Context, sessionID string) (*services.SessionData, error)
}

type Handler struct {
	store    storage.Store
	cache    cache.SessionCache
	exchange SessionExchanger
	log      *logrus.Logger
}

func NewHandler(store storage.Store, sessions cache.SessionCache, exchange SessionExchanger, log *logrus.Logger) *Handler {
	return &Handler{store: store, cache: sessions, exchange: exchange, log: log}
}

// CreateSession exchanges the X-Session-ID header with the session-data
// provider, upserts the user by email and provisions a 7-day session.
// @Summary Exchange an upstream session id for a session
// @Tags auth
// @Success 200 {object} models.User
// @Failure 400 {string} string "Session ID required"
// @Failure 401 {string} string "Invalid session"
// @Router /auth/session [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		web.Error(w, http.StatusBadRequest, "Session ID required")
		return
	}

	data, err := h.exchange.Exchange(r.Context(), sessionID)
	if err != nil {
		h.log.WithError(err).Warn("session exchange failed")
		web.Error(w, http.StatusUnauthorized, "Invalid session")
		return
	}

	user, err := h.upsertUser(r.Context(), data)
	if err != nil {
		h.log.WithError(err).Error("upsert user")
		web.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	now := time.Now().UTC()
	session := &models.Session{
		UserID:    user.ID,
		Token:     data.SessionToken,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := h.store.CreateSession(r.Context(), session); err != nil {
		h.log.WithError(err).Error("create session")
		web.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if h.cache != nil {
		_ = h.cache.SetSession(r.Context(), session)
	}

	setSessionCookie(w, session.Token)
	web.JSON(w, http.StatusOK, user)
}

// upsertUser creates the user on first login and refreshes name/picture on
// subsequent ones. Email is the identity key.
func (h *Handler) upsertUser(ctx context.Context, data *services.SessionData) (*models.User, error) {
	existing, err := h.store.GetUserByEmail(ctx, data.Email)
	if err == nil {
		if err := h.store.UpdateUserProfile(ctx, existing.ID, data.Name, data.Picture); err != nil {
			return nil, err
		}
		return h.store.GetUser(ctx, existing.ID)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:        models.NewID("user"),
		Email:     data.Email,
		Name:      data.Name,
		Picture:   data.Picture,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Me returns the caller's user record.
// @Summary Current user
// @Tags auth
// @Success 200 {object} models.User
// @Failure 404 {string} string "User not found"
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			web.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.WithError(err).Error("get user")
		web.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}
	web.JSON(w, http.StatusOK, user)
}

// Logout deletes the presented token's session, if any, and clears the
// cookie. Deleting an unknown token is not an error.
// @Summary Log out
// @Tags auth
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := TokenFromRequest(r); token != "" {
		if err := h.store.DeleteSession(r.Context(), token); err != nil {
			h.log.WithError(err).Warn("delete session")
		}
		if h.cache != nil {
			_ = h.cache.DeleteSession(r.Context(), token)
		}
	}
	clearSessionCookie(w)
	web.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}
