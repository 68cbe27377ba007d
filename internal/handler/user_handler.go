package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"schedly-be/internal/domain"
	"schedly-be/internal/service"
	"schedly-be/pkg/logger"
)

// UserHandler handles handle reservation and account registration
type UserHandler struct {
	registrar *service.RegistrarService
	sessions  service.SessionService
	logger    *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(registrar *service.RegistrarService, sessions service.SessionService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		registrar: registrar,
		sessions:  sessions,
		logger:    logger,
	}
}

// Claim handles POST /api/users/claim. It validates and normalizes the
// candidate handle and answers with the navigation target for the
// registration step. Uniqueness is not checked here; two visitors can
// both claim the same handle and the race resolves at registration.
func (h *UserHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req domain.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	resp, err := h.registrar.ClaimHandle(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, resp, h.logger)
}

// Register handles POST /api/users. On success it creates the user and
// establishes the session cookie that binds this client to the new
// account for the rest of the registration flow.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user, err := h.registrar.Register(r.Context(), &req)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrDuplicateHandle):
			respondError(w, http.StatusBadRequest, domain.DuplicateHandleMessage, h.logger)
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Error(), h.logger)
		default:
			h.logger.WithError(err).Error("Registration failed")
			respondError(w, http.StatusInternalServerError, "Failed to create user", h.logger)
		}
		return
	}

	token, err := h.sessions.IssueToken(user.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue session token")
		respondError(w, http.StatusInternalServerError, "Failed to establish session", h.logger)
		return
	}
	http.SetCookie(w, h.sessions.NewCookie(token))

	respondJSON(w, http.StatusCreated, domain.RegisterResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
	}, h.logger)
}
