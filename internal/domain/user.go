package domain

import (
	"errors"
	"time"
)

// ErrDuplicateHandle is returned when a registration collides with an
// existing username. The storage-layer unique constraint is the source
// of truth for this condition, not an application-level lookup.
var ErrDuplicateHandle = errors.New("username already taken")

// DuplicateHandleMessage is the client-facing message for ErrDuplicateHandle.
const DuplicateHandleMessage = "Nome de usuário já existe."

// User represents a registered user in the system
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// RegisterResponse represents the created user returned to the client
type RegisterResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ClaimRequest represents the handle reservation request body
type ClaimRequest struct {
	Username string `json:"username"`
}

// ClaimResponse carries the normalized handle and the navigation target
// for the registration step. Nothing is persisted at claim time; the
// handle is only reserved by pre-filling the next form.
type ClaimResponse struct {
	Username   string `json:"username"`
	RedirectTo string `json:"redirect_to"`
}
