package repositories

import (
	"context"

	"taskboard/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
//
// GetByID is deliberately not scoped to a user: visibility is a service
// concern, and checking it there keeps NotFound and Forbidden
// distinguishable.
type ProjectRepository interface {
	// Create inserts a new project and fills in generated ID and timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListVisible retrieves all projects the user owns or is a member of,
	// ordered by created_at DESC
	ListVisible(ctx context.Context, userID string) ([]models.Project, error)

	// Update rewrites a project's mutable fields and updated_at
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project row
	Delete(ctx context.Context, id string) error
}
