package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure issued by the auth endpoints and
// accepted by the middleware. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}
