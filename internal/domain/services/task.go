package services

import (
	"context"
	"time"

	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	UserID         string     `json:"-"`
	ProjectID      string     `json:"projectId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	AssigneeID     string     `json:"assigneeId"`
	Priority       string     `json:"priority"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	EstimatedHours float64    `json:"estimatedHours"`
	DueDate        *time.Time `json:"dueDate"`
}

// UpdateTaskRequest represents a request to update a task.
// Nil pointers leave the corresponding field unchanged.
type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	AssigneeID     *string    `json:"assigneeId"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	Category       *string    `json:"category"`
	Tags           *[]string  `json:"tags"`
	EstimatedHours *float64   `json:"estimatedHours"`
	DueDate        *time.Time `json:"dueDate"`
}

// TaskService defines business logic operations for tasks
type TaskService interface {
	// CreateTask creates a task in a project the user can see
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*models.Task, error)

	// GetTask retrieves a task by ID
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// ListTasks retrieves tasks matching the filter
	ListTasks(ctx context.Context, filter repositories.TaskFilter) ([]models.Task, error)

	// ListProjectTasks retrieves a project's tasks
	ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error)

	// UpdateTask updates a task; creator or assignee only
	UpdateTask(ctx context.Context, id, userID string, req *UpdateTaskRequest) (*models.Task, error)

	// UpdateStatus transitions a task's status; moving to done stamps
	// completed_date
	UpdateStatus(ctx context.Context, id, userID, status string) (*models.Task, error)

	// DeleteTask deletes a task; creator only
	DeleteTask(ctx context.Context, id, userID string) error
}
