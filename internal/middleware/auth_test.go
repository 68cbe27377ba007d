package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedly-be/internal/service"
	"schedly-be/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "development")
	require.NoError(t, err)
	return log
}

func TestSessionMiddleware(t *testing.T) {
	log := newTestLogger(t)
	sessions := service.NewSessionService("test-secret", "development", log)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Session(sessions, log)(next)

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		gotUserID = ""
		token, err := sessions.IssueToken("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(sessions.NewCookie(token))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-123", gotUserID)
	})

	t.Run("missing cookie terminates with bare 401", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, gotUserID)
	})

	t.Run("tampered token terminates with bare 401", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: "not-a-signed-token"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, gotUserID)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := service.NewSessionService("other-secret", "development", log)
		token, err := other.IssueToken("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserIDFromContextWithoutValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserIDFromContext(req.Context()))
}

func TestRequestIDMiddleware(t *testing.T) {
	log := newTestLogger(t)

	var gotRequestID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID, _ = r.Context().Value(RequestIDContextKey).(string)
	})
	handler := RequestID(log)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, gotRequestID, rec.Header().Get("X-Request-ID"))
}
