// Package middleware provides HTTP middlewares for authentication, rate
// limiting and logging of the sandbox record service.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/mouthpiecer/internal/wire"
)

type ctxKey string

const userKey ctxKey = "user"

// Authorizer resolves a session token to its user ID.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

// TokenAuth resolves the Authorization header to a user and stores the user
// ID in the request context. Authorizer errors matching unauthorized give 401,
// any other error 500.
func TokenAuth(auth Authorizer, unauthorized error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.Authorize(r.Context(), r.Header.Get(wire.HeaderAuthorization))
			if err != nil {
				if errors.Is(err, unauthorized) {
					http.Error(w, "invalid token", http.StatusUnauthorized)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireHeader rejects requests whose header differs from want with status.
func RequireHeader(header, want string, status int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(header) != want {
				http.Error(w, "invalid "+header, status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAppID accepts only requests for the configured application.
func RequireAppID(appID string) func(http.Handler) http.Handler {
	return RequireHeader(wire.HeaderAppID, appID, http.StatusNotFound)
}

// RequireAPIKey accepts only requests carrying key.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return RequireHeader(wire.HeaderAPIKey, key, http.StatusUnauthorized)
}

// GetUserIDFromContext extracts the user ID stored by TokenAuth.
// Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
