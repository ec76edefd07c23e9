package services

import (
	"context"

	"taskboard/internal/domain/models"
)

// UpdateProfileRequest represents a profile update.
// Nil pointers leave the corresponding field unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UserService defines profile operations
type UserService interface {
	// GetUser retrieves a user's public profile
	GetUser(ctx context.Context, id string) (*models.User, error)

	// UpdateProfile updates the caller's own profile fields
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error)
}
