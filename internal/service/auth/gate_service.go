package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"schedly-be/internal/config"
	"schedly-be/internal/domain"
	"schedly-be/internal/repository"
	"schedly-be/internal/service"
	"schedly-be/pkg/errors"
	"schedly-be/pkg/logger"
	"schedly-be/pkg/redis"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// reasonPermissions marks a scope rejection in the remediation redirect.
const reasonPermissions = "permissions"

// Service implements the GateService interface. It drives the OAuth
// handshake and decides, from the granted scope set, whether the user has
// actually connected their calendar. The decision is a tagged result; the
// routing layer turns it into a destination.
type Service struct {
	oauthConfig    *oauth2.Config
	connectionRepo repository.ConnectionRepository
	calendar       service.CalendarService
	redisClient    *redis.Client
	logger         *logger.Logger
}

// NewService creates a new authorization gate service
func NewService(
	cfg *config.Config,
	connectionRepo repository.ConnectionRepository,
	calendar service.CalendarService,
	redisClient *redis.Client,
	logger *logger.Logger,
) *Service {
	return &Service{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURL(),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				domain.CalendarScope,
			},
			Endpoint: google.Endpoint,
		},
		connectionRepo: connectionRepo,
		calendar:       calendar,
		redisClient:    redisClient,
		logger:         logger,
	}
}

// AuthCodeURL builds the provider consent URL. Offline access plus a
// forced consent prompt guarantee a refresh token on every approval, so
// a retry after a rejected scope re-runs the full consent screen.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// HandleCallback exchanges the authorization code and evaluates the
// granted scope set for the given user. The grant is stored either way;
// rejection only changes the decision handed back to the router, so a
// session can keep existing while the calendar stays unconnected.
func (s *Service) HandleCallback(ctx context.Context, userID, code string) (domain.ScopeDecision, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return domain.ScopeDecision{}, errors.NewExternalError("Failed to exchange authorization code", err)
	}

	grantedScopes := scopesFromToken(token)
	decision := s.EvaluateScopes(grantedScopes)

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return domain.ScopeDecision{}, err
	}

	now := time.Now().UTC()
	conn := &domain.GoogleConnection{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProviderUser: profile.Sub,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Scopes:       strings.Join(grantedScopes, " "),
		ExpiresAt:    token.Expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.connectionRepo.Upsert(ctx, conn); err != nil {
		return domain.ScopeDecision{}, fmt.Errorf("failed to store grant: %w", err)
	}

	s.cacheConnected(ctx, userID, decision.Accepted())

	if decision.Accepted() {
		// Confirm the scope actually works before the user moves on.
		// A failure here is logged, not fatal: the scope literal is the
		// contract, the probe is a smoke test.
		if err := s.calendar.VerifyAccess(ctx, s.oauthConfig.TokenSource(ctx, token)); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Calendar access probe failed after scope acceptance")
		}
		s.logger.WithFields(map[string]interface{}{
			"user_id":       userID,
			"provider_user": profile.Sub,
		}).Info("Calendar scope accepted")
	} else {
		s.logger.WithFields(map[string]interface{}{
			"user_id":        userID,
			"granted_scopes": conn.Scopes,
		}).Info("Calendar scope rejected")
	}

	return decision, nil
}

// EvaluateScopes decides whether a granted scope set is acceptable. The
// grant passes iff the calendar scope literal is present; email and
// profile alone route to remediation.
func (s *Service) EvaluateScopes(scopes []string) domain.ScopeDecision {
	for _, scope := range scopes {
		if scope == domain.CalendarScope {
			return domain.ScopeDecision{Outcome: domain.ScopeAccepted}
		}
	}
	return domain.ScopeDecision{Outcome: domain.ScopeRejected, Reason: reasonPermissions}
}

// ConnectionStatus reports whether the user currently holds an accepted
// calendar grant, preferring the cached evaluation over a storage read.
func (s *Service) ConnectionStatus(ctx context.Context, userID string) (*domain.ConnectionStatus, error) {
	if s.redisClient != nil {
		key := s.redisClient.KeyBuilder.KeyCalendarConnected(userID)
		if val, err := s.redisClient.Get(ctx, key); err == nil {
			return &domain.ConnectionStatus{Connected: val == "1"}, nil
		} else if err != redis.Nil {
			s.logger.WithError(err).Warn("Connection status cache read failed, falling back to storage")
		}
	}

	conn, err := s.connectionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load connection: %w", err)
	}

	connected := conn != nil && s.EvaluateScopes(strings.Fields(conn.Scopes)).Accepted()
	s.cacheConnected(ctx, userID, connected)

	return &domain.ConnectionStatus{Connected: connected}, nil
}

// cacheConnected records the latest scope evaluation. Cache failures are
// logged and ignored; storage remains the source of truth.
func (s *Service) cacheConnected(ctx context.Context, userID string, connected bool) {
	if s.redisClient == nil {
		return
	}
	val := "0"
	if connected {
		val = "1"
	}
	key := s.redisClient.KeyBuilder.KeyCalendarConnected(userID)
	if err := s.redisClient.Set(ctx, key, val, redis.TTLCalendarConnected); err != nil {
		s.logger.WithError(err).Warn("Failed to cache connection status")
	}
}

// fetchProfile loads the provider identity claims for the granted token.
func (s *Service) fetchProfile(ctx context.Context, token *oauth2.Token) (*domain.GoogleProfile, error) {
	client := s.oauthConfig.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, errors.NewInternalError("Failed to create userinfo request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewExternalError("Failed to fetch user info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalError(fmt.Sprintf("Userinfo request failed with status %d", resp.StatusCode), nil)
	}

	profile := &domain.GoogleProfile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, errors.NewInternalError("Failed to decode user info", err)
	}
	if profile.Sub == "" {
		return nil, errors.NewExternalError("Userinfo response missing subject", nil)
	}

	return profile, nil
}

// scopesFromToken extracts the granted scope set from the token response.
// Google returns the effective scopes as a space-separated string in the
// "scope" field, which may be narrower than what was requested.
func scopesFromToken(token *oauth2.Token) []string {
	if raw, ok := token.Extra("scope").(string); ok {
		return strings.Fields(raw)
	}
	return nil
}
