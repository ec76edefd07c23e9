package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 7 * 24 * time.Hour

// LocalAuthenticator issues and verifies HS256 tokens with a shared
// secret. This is the default mode when no external identity provider
// is configured.
type LocalAuthenticator struct {
	secret []byte
	logger *slog.Logger
}

// NewLocalAuthenticator creates an HS256 issuer/verifier pair
func NewLocalAuthenticator(secret string, logger *slog.Logger) (*LocalAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &LocalAuthenticator{secret: []byte(secret), logger: logger}, nil
}

// IssueToken signs a token carrying the user's ID, username, and role
func (a *LocalAuthenticator) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken validates an HS256 token and extracts its claims
func (a *LocalAuthenticator) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Pin the algorithm to prevent algorithm confusion attacks
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		a.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close is a no-op for the local authenticator
func (a *LocalAuthenticator) Close() error {
	return nil
}
