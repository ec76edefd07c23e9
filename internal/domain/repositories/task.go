package repositories

import (
	"context"

	"taskboard/internal/domain/models"
)

// TaskFilter narrows task listings. Zero values mean "no constraint".
type TaskFilter struct {
	Status     string
	Priority   string
	AssigneeID string
	ProjectID  string
}

// TaskRepository defines data access operations for tasks
type TaskRepository interface {
	// Create inserts a new task and fills in generated ID and timestamps
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task with creator/assignee summaries and
	// project name joined in
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListForProjects retrieves all tasks belonging to the given project
	// set, optionally narrowed by a case-insensitive substring search
	// over title, description, and tags
	ListForProjects(ctx context.Context, projectIDs []string, search string) ([]models.Task, error)

	// ListByProject retrieves a single project's tasks, due date ascending
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)

	// ListFiltered retrieves tasks matching the filter, due date ascending
	ListFiltered(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update rewrites a task's mutable fields and updated_at
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task row
	Delete(ctx context.Context, id string) error

	// DeleteByProject removes all tasks of a project; used inside the
	// project-delete transaction
	DeleteByProject(ctx context.Context, projectID string) error
}
