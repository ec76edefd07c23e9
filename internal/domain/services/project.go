package services

import (
	"context"
	"time"

	"taskboard/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID      string     `json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateProjectRequest represents a request to update a project.
// Nil pointers leave the corresponding field unchanged.
type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
	Progress    *int       `json:"progress"`
	Tags        *[]string  `json:"tags"`
}

// AddMemberRequest represents a request to add a project member
type AddMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// ProjectTaskStats summarizes a project's tasks by status.
// HighPriority counts high and urgent tasks; Overdue counts tasks past
// their due date that are not done.
type ProjectTaskStats struct {
	Total        int `json:"total"`
	Todo         int `json:"todo"`
	InProgress   int `json:"inProgress"`
	Review       int `json:"review"`
	Done         int `json:"done"`
	Blocked      int `json:"blocked"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a project; the creator becomes owner and an
	// admin member
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project the user can see
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)

	// ListProjects retrieves all projects visible to the user
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)

	// UpdateProject updates a project; owner only
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// AddMember adds a member; owner only
	AddMember(ctx context.Context, id, userID string, req *AddMemberRequest) (*models.Project, error)

	// DeleteProject deletes a project and its tasks; owner only
	DeleteProject(ctx context.Context, id, userID string) error

	// GetTaskStats computes task status counts for a visible project
	GetTaskStats(ctx context.Context, id, userID string) (*ProjectTaskStats, error)
}
