package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"schedly-be/pkg/logger"
)

// sessionCookieName binds a browser to a registered user id. The value is
// a signed token rather than the raw id, so a client cannot forge another
// user's session by editing the cookie.
const sessionCookieName = "@schedly:userId"

// sessionTTL is the validity window of a session cookie.
const sessionTTL = 7 * 24 * time.Hour

// sessionClaims are the JWT claims carried by a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// jwtSessionService implements SessionService with HS256-signed tokens
type jwtSessionService struct {
	secret []byte
	secure bool
	logger *logger.Logger
}

// NewSessionService creates a new session service. Cookies are marked
// Secure outside development so they only travel over TLS.
func NewSessionService(secret, environment string, logger *logger.Logger) SessionService {
	return &jwtSessionService{
		secret: []byte(secret),
		secure: environment != "development",
		logger: logger,
	}
}

// IssueToken creates a signed session token bound to a user id
func (s *jwtSessionService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.WithField("user_id", userID).Debug("Issued session token")
	return signed, nil
}

// ValidateToken verifies a session token and returns the user id
func (s *jwtSessionService) ValidateToken(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}

// NewCookie wraps a token in the session cookie
func (s *jwtSessionService) NewCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName returns the name of the session cookie
func (s *jwtSessionService) CookieName() string {
	return sessionCookieName
}
