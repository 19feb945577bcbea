package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/no-thing-project/hub-frontend/internal/hub"
)

type contextKey string

const sessionKey contextKey = "hub_session"

// Auth resolves the bearer token on incoming requests to a hub session and
// rejects missing, expired or logged-out tokens before any backend call.
type Auth struct {
	sessions *hub.SessionManager
}

func NewAuth(sessions *hub.SessionManager) *Auth {
	return &Auth{sessions: sessions}
}

// NeedAuth returns middleware that requires a live bearer token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "authentication required")
				return
			}
			session := a.sessions.Get(token)
			if session.Expired(time.Now()) || session.LoggedOut() {
				unauthorized(w, "session expired, please log in again")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom extracts the session placed by NeedAuth. It is nil on routes
// outside the authenticated subtree.
func SessionFrom(ctx context.Context) *hub.Session {
	session, _ := ctx.Value(sessionKey).(*hub.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `","redirect":"/login"}`))
}
