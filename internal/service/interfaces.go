package service

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"schedly-be/internal/domain"
)

// SessionService defines the interface for session token operations
type SessionService interface {
	// IssueToken creates a signed session token bound to a user id
	IssueToken(userID string) (string, error)

	// ValidateToken verifies a session token and returns the user id
	ValidateToken(token string) (string, error)

	// NewCookie wraps a token in the session cookie (7-day max-age, site-wide path)
	NewCookie(token string) *http.Cookie

	// CookieName returns the name of the session cookie
	CookieName() string
}

// GateService defines the interface for the calendar authorization gate
type GateService interface {
	// AuthCodeURL builds the provider consent URL requesting email,
	// profile and calendar scopes
	AuthCodeURL(state string) string

	// HandleCallback exchanges the authorization code and evaluates the
	// granted scope set for the given user
	HandleCallback(ctx context.Context, userID, code string) (domain.ScopeDecision, error)

	// EvaluateScopes decides whether a granted scope set is acceptable
	EvaluateScopes(scopes []string) domain.ScopeDecision

	// ConnectionStatus reports whether the user currently holds an
	// accepted calendar grant
	ConnectionStatus(ctx context.Context, userID string) (*domain.ConnectionStatus, error)
}

// CalendarService defines the interface for Google Calendar operations
type CalendarService interface {
	// VerifyAccess confirms the granted token can read the primary calendar
	VerifyAccess(ctx context.Context, source oauth2.TokenSource) error
}

// Services aggregates all service instances
type Services struct {
	Session   SessionService
	Gate      GateService
	Calendar  CalendarService
	Registrar *RegistrarService
	Schedule  *ScheduleService
}
