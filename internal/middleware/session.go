// Package middleware provides HTTP middlewares for session resolution and
// request logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/mind0bender/phew/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "session"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "_session"

// Identifier resolves a session token to an identity.
type Identifier interface {
	Identify(ctx context.Context, token string) (models.ShareableUser, error)
}

// SessionAuth resolves the session cookie into the current identity and
// stores both the identity and the raw token in the request context. A
// missing or stale cookie resolves to the anonymous identity rather than
// rejecting the request; individual commands gate themselves.
func SessionAuth(auth Identifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}

			user, err := auth.Identify(r.Context(), token)
			if err != nil {
				log.Error("identify session", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the resolved identity from the request context. Requests
// that did not pass through SessionAuth resolve to the anonymous identity.
func GetUser(ctx context.Context) models.ShareableUser {
	if user, ok := ctx.Value(userKey).(models.ShareableUser); ok {
		return user
	}
	return models.DefaultUser()
}

// GetSessionToken extracts the raw session token from the request context.
// Returns an empty string if not found.
func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
