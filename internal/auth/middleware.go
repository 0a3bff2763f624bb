package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"grillhouse/internal/auth/service"
)

const sessionCookieName = "session_token"

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the authenticated session placed on the
// request context by RequireRole.
func SessionFromContext(ctx context.Context) (*service.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*service.Session)
	return session, ok
}

// Middleware guards routes behind a live session.
type Middleware struct {
	auth *service.AuthService
}

func NewMiddleware(auth *service.AuthService) *Middleware {
	return &Middleware{auth: auth}
}

// RequireRole rejects requests without a live session (401) or whose
// session lacks the role (403), and stores the session on the context.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			session, ok := m.auth.SessionFor(cookie.Value)
			if !ok {
				unauthorized(w)
				return
			}

			if session.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "Admin access required"})
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
