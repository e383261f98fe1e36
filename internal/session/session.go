// Package session assigns each browser an anonymous session id via a
// cookie, scoping its cart key. There are no users or credentials; the id
// only keeps one visitor's bag apart from another's.
package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const cookieName = "gdg_session"

type contextKey string

const sessionKey contextKey = "session"

// Middleware ensures the request carries a session cookie, minting a new
// uuid when none is present, and stores the id in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			if parsed, err := uuid.Parse(cookie.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session id set by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok
}
