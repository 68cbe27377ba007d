package domain

import "time"

// CalendarScope is the Google permission the scheduling feature needs.
// A grant is accepted only when this literal is present in the granted
// scope set.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// ScopeOutcome tags the result of evaluating a grant's scope set.
type ScopeOutcome string

const (
	ScopeAccepted ScopeOutcome = "accepted"
	ScopeRejected ScopeOutcome = "rejected"
)

// ScopeDecision is the explicit result of the callback scope check. The
// routing layer picks a destination from it; the check itself never
// encodes a redirect path.
type ScopeDecision struct {
	Outcome ScopeOutcome
	// Reason is set only on rejection, e.g. "permissions".
	Reason string
}

// Accepted reports whether the grant carried the calendar scope.
func (d ScopeDecision) Accepted() bool {
	return d.Outcome == ScopeAccepted
}

// GoogleConnection represents the latest accepted grant for a user.
// A new sign-in overwrites the previous connection; historical grants
// are not versioned.
type GoogleConnection struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProviderUser string    `json:"provider_user"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Scopes       string    `json:"scopes"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GoogleProfile represents the identity claims returned by Google's
// userinfo endpoint after a successful exchange.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// ConnectionStatus is what the frontend polls to decide between the
// "connected" and "not connected" renderings.
type ConnectionStatus struct {
	Connected bool `json:"connected"`
}
