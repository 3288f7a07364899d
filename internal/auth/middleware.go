package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashafierce98/TGPTaskflow/internal/web"
)

type contextKey string

const userIDKey contextKey = "taskflow_user_id"

// Middleware authenticates the request and injects the user id into the
// context. Failures short-circuit with 401 and a reason string matching the
// error taxonomy.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.Authenticate(r.Context(), r)
		if err != nil {
			web.Error(w, http.StatusUnauthorized, reasonFor(err))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrSessionExpired):
		return "Session expired"
	case errors.Is(err, ErrInvalidSession):
		return "Invalid session"
	default:
		return "Not authenticated"
	}
}

// UserIDFromContext returns the authenticated user id set by Middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	return userID, ok
}
