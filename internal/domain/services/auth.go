package services

import (
	"context"

	"taskboard/internal/domain/models"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AuthResult carries a signed token and the public profile it belongs to
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService defines account and credential operations
type AuthService interface {
	// Register creates a new account and returns a signed token
	Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error)

	// Login checks credentials, stamps last_login, and returns a signed token
	Login(ctx context.Context, req *LoginRequest) (*AuthResult, error)

	// ChangePassword verifies the old password and stores a new hash
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
}
