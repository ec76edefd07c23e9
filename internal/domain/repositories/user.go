package repositories

import (
	"context"

	"taskboard/internal/domain/models"
)

// UserRepository defines data access operations for user accounts
type UserRepository interface {
	// Create inserts a new user and fills in generated ID and timestamps
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID (without password hash)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email including the password hash,
	// for credential checks
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmailOrUsername reports whether any user holds the given
	// email or username
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// UpdateProfile updates mutable profile fields
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdateLastLogin stamps the last successful login time
	UpdateLastLogin(ctx context.Context, id string) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
