package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"

	"schedly-be/internal/middleware"
	"schedly-be/internal/service"
	"schedly-be/pkg/logger"
)

// stateCookieName carries the CSRF state between the consent redirect
// and the provider callback.
const stateCookieName = "@schedly:oauthState"

// remediationPath is where scope-rejected sign-ins land; the error marker
// is the only server-side signal the page receives.
const remediationPath = "/register/connect-calendar/"

// postAuthPath is the default destination after an accepted grant.
const postAuthPath = "/register/time-intervals"

// AuthHandler drives the calendar authorization gate over HTTP
type AuthHandler struct {
	gate        service.GateService
	frontendURL string
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate service.GateService, frontendURL string, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		gate:        gate,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Login handles GET /api/auth/google. Explicit user action moves the
// state machine from Unauthenticated to ProviderRedirect; the consent
// URL requests email, profile and calendar scopes.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate OAuth state")
		respondError(w, http.StatusInternalServerError, "Failed to start authorization", h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.gate.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /api/auth/google/callback. The provider redirects
// here after consent; the granted scope set decides between the default
// post-auth route and the remediation page. A rejected scope keeps the
// session alive so the frontend can render "not yet connected".
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state", h.logger)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if providerErr := r.URL.Query().Get("error"); providerErr != "" {
		h.logger.WithField("provider_error", providerErr).Info("Provider returned an error on callback")
		h.redirectWithError(w, r, providerErr)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, "no_code")
		return
	}

	decision, err := h.gate.HandleCallback(r.Context(), userID, code)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("OAuth callback failed")
		h.redirectWithError(w, r, "callback_failed")
		return
	}

	if !decision.Accepted() {
		h.redirectWithError(w, r, decision.Reason)
		return
	}

	http.Redirect(w, r, h.frontendURL+postAuthPath, http.StatusTemporaryRedirect)
}

// Status handles GET /api/auth/status. The frontend polls it to choose
// between the "connected" and "not connected" renderings.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	status, err := h.gate.ConnectionStatus(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to load connection status")
		respondError(w, http.StatusInternalServerError, "Failed to load connection status", h.logger)
		return
	}

	respondJSON(w, http.StatusOK, status, h.logger)
}

// redirectWithError sends the browser to the remediation page with an
// error marker in the query string.
func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, marker string) {
	target := h.frontendURL + remediationPath + "?" + url.Values{"error": {marker}}.Encode()
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// generateState produces a random CSRF state value
func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
