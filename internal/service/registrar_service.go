package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"schedly-be/internal/domain"
	"schedly-be/internal/repository"
	"schedly-be/pkg/logger"
)

// RegistrarService creates user accounts from a claimed handle and a
// display name. Handle uniqueness is enforced by storage, so concurrent
// registrations for the same handle resolve at the insert, not here.
type RegistrarService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

// NewRegistrarService creates a new registrar service
func NewRegistrarService(userRepo repository.UserRepository, logger *logger.Logger) *RegistrarService {
	return &RegistrarService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ClaimHandle validates a candidate handle and produces the navigation
// instruction for the registration step. Nothing is persisted; the handle
// is only reserved by pre-filling the registration form.
func (s *RegistrarService) ClaimHandle(req *domain.ClaimRequest) (*domain.ClaimResponse, error) {
	username := domain.NormalizeHandle(req.Username)
	if err := domain.ValidateHandle(username); err != nil {
		return nil, err
	}

	return &domain.ClaimResponse{
		Username:   username,
		RedirectTo: "/register?" + url.Values{"username": {username}}.Encode(),
	}, nil
}

// Register creates the user record. The handle is re-validated server
// side; client checks are never trusted. Returns domain.ErrDuplicateHandle
// when the normalized handle is already taken, including when the same
// form is re-submitted after a prior success.
func (s *RegistrarService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	username := domain.NormalizeHandle(req.Username)
	if err := domain.ValidateHandle(username); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(req.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrDuplicateHandle {
			s.logger.WithField("username", username).Info("Registration rejected, username taken")
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}
