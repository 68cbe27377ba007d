package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedly-be/internal/domain"
	"schedly-be/internal/middleware"
)

const testFrontendURL = "http://localhost:3000"

// fakeGate scripts the authorization gate so handler routing can be
// exercised without a provider round trip.
type fakeGate struct {
	decision     domain.ScopeDecision
	callbackErr  error
	status       *domain.ConnectionStatus
	statusErr    error
	lastUserID   string
	lastCode     string
	callbackHits int
}

func (g *fakeGate) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (g *fakeGate) HandleCallback(ctx context.Context, userID, code string) (domain.ScopeDecision, error) {
	g.callbackHits++
	g.lastUserID = userID
	g.lastCode = code
	return g.decision, g.callbackErr
}

func (g *fakeGate) EvaluateScopes(scopes []string) domain.ScopeDecision {
	return g.decision
}

func (g *fakeGate) ConnectionStatus(ctx context.Context, userID string) (*domain.ConnectionStatus, error) {
	return g.status, g.statusErr
}

func newAuthTestHandler(t *testing.T, gate *fakeGate) *AuthHandler {
	t.Helper()
	return NewAuthHandler(gate, testFrontendURL, newTestLogger(t))
}

func callbackRequest(state, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?"+query, nil)
	if state != "" {
		req.AddCookie(&http.Cookie{Name: "@schedly:oauthState", Value: state})
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "user-123"))
}

func TestLoginRedirectsToConsent(t *testing.T) {
	h := newAuthTestHandler(t, &fakeGate{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	state := cookies[0]
	assert.Equal(t, "@schedly:oauthState", state.Name)
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)

	location := rec.Header().Get("Location")
	assert.Equal(t, "https://accounts.example.com/o/oauth2/auth?state="+state.Value, location)
}

func TestCallbackAcceptedScopes(t *testing.T) {
	gate := &fakeGate{decision: domain.ScopeDecision{Outcome: domain.ScopeAccepted}}
	h := newAuthTestHandler(t, gate)

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("state-1", "state=state-1&code=auth-code"))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testFrontendURL+"/register/time-intervals", rec.Header().Get("Location"))
	assert.Equal(t, "user-123", gate.lastUserID, "identity comes from the session, not the provider")
	assert.Equal(t, "auth-code", gate.lastCode)
}

func TestCallbackRejectedScopes(t *testing.T) {
	gate := &fakeGate{decision: domain.ScopeDecision{
		Outcome: domain.ScopeRejected,
		Reason:  "permissions",
	}}
	h := newAuthTestHandler(t, gate)

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("state-1", "state=state-1&code=auth-code"))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testFrontendURL+"/register/connect-calendar/?error=permissions", rec.Header().Get("Location"))
}

func TestCallbackProviderErrorPassthrough(t *testing.T) {
	gate := &fakeGate{}
	h := newAuthTestHandler(t, gate)

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("state-1", "state=state-1&error=access_denied"))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testFrontendURL+"/register/connect-calendar/?error=access_denied", rec.Header().Get("Location"))
	assert.Equal(t, 0, gate.callbackHits, "no exchange happens on a provider error")
}

func TestCallbackMissingCode(t *testing.T) {
	gate := &fakeGate{}
	h := newAuthTestHandler(t, gate)

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("state-1", "state=state-1"))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testFrontendURL+"/register/connect-calendar/?error=no_code", rec.Header().Get("Location"))
	assert.Equal(t, 0, gate.callbackHits)
}

func TestCallbackStateMismatch(t *testing.T) {
	gate := &fakeGate{}
	h := newAuthTestHandler(t, gate)

	tests := []struct {
		name  string
		state string
		query string
	}{
		{name: "mismatched state", state: "state-1", query: "state=state-2&code=auth-code"},
		{name: "missing cookie", state: "", query: "state=state-1&code=auth-code"},
		{name: "missing query state", state: "state-1", query: "code=auth-code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Callback(rec, callbackRequest(tt.state, tt.query))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, gate.callbackHits)
		})
	}
}

func TestCallbackWithoutSession(t *testing.T) {
	gate := &fakeGate{}
	h := newAuthTestHandler(t, gate)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=s&code=c", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCallbackExchangeFailure(t *testing.T) {
	gate := &fakeGate{callbackErr: assert.AnError}
	h := newAuthTestHandler(t, gate)

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("state-1", "state=state-1&code=auth-code"))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testFrontendURL+"/register/connect-calendar/?error=callback_failed", rec.Header().Get("Location"))
}

func TestStatus(t *testing.T) {
	gate := &fakeGate{status: &domain.ConnectionStatus{Connected: true}}
	h := newAuthTestHandler(t, gate)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.ConnectionStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.Connected)
}
