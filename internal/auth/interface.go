package auth

import "taskboard/internal/domain/models"

// TokenVerifier defines the interface for JWT token verification.
// This abstraction allows different verification implementations while
// keeping the middleware agnostic to the verification details.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// TokenIssuer signs tokens for locally authenticated users
type TokenIssuer interface {
	// IssueToken signs a token carrying the user's ID, username, and role
	IssueToken(user *models.User) (string, error)
}
