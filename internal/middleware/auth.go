package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"schedly-be/internal/service"
	"schedly-be/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserIDContextKey is the key for the authenticated user id in context
	UserIDContextKey ContextKey = "user_id"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// Session creates a middleware that resolves the caller from the session
// cookie and injects the user id into the request context. Requests
// without a valid session are terminated with 401 and no body, matching
// the availability endpoint contract.
func Session(sessions service.SessionService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessions.CookieName())
			if err != nil || cookie.Value == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			userID, err := sessions.ValidateToken(cookie.Value)
			if err != nil {
				logger.WithError(err).Debug("Session token validation failed")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, empty when the
// request did not pass the session middleware.
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDContextKey).(string); ok {
		return userID
	}
	return ""
}

// ContextWithUserID injects a user id into a context. Used by tests that
// exercise handlers without the full middleware chain.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a simple request ID
func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}
