package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

type contextKey struct{}

var userKey contextKey

// HeaderRefreshToken carries the refresh token on requests and the renewed
// one on responses.
const HeaderRefreshToken = "X-Refresh-Token"

// UserFromContext returns the connected user placed there by Middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// Middleware authenticates the request. A valid bearer access token resolves
// the connected user directly. An expired or invalid access token falls back
// to the refresh token header: when that verifies against the user's stored
// secret, a fresh pair is issued and echoed back on the response headers so
// the client rotates transparently. Both failing ends the request with 401.
func (m *TokenManager) Middleware(users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := m.VerifyAccess(bearer(r.Header.Get("Authorization"))); err == nil {
				user, err := users.FindByID(r.Context(), userID)
				if err != nil {
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
				return
			}

			user, access, refresh, err := m.Refresh(r.Context(), bearer(r.Header.Get(HeaderRefreshToken)), users)
			if err != nil {
				slog.Debug("authentication failed", "error", err)
				unauthorized(w)
				return
			}

			w.Header().Set("Authorization", "Bearer "+access)
			w.Header().Set(HeaderRefreshToken, "Bearer "+refresh)
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireRole guards a route with a role check on the connected user.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			unauthorized(w)
		})
	}
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func bearer(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"You need to connect again."}`))
}
