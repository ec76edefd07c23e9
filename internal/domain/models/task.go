package models

import "time"

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
	TaskStatusBlocked    = "blocked"
)

// TaskStatuses lists every accepted task status, in workflow order.
var TaskStatuses = []string{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusDone,
	TaskStatusBlocked,
}

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// TaskPriorities lists every accepted task priority.
var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

type Task struct {
	ID             string       `json:"id" db:"id"`
	ProjectID      string       `json:"projectId" db:"project_id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description,omitempty" db:"description"`
	Status         string       `json:"status" db:"status"`
	Priority       string       `json:"priority" db:"priority"`
	Category       string       `json:"category,omitempty" db:"category"`
	Tags           []string     `json:"tags" db:"tags"`
	CreatorID      string       `json:"creatorId" db:"creator_id"`
	AssigneeID     string       `json:"assigneeId,omitempty" db:"assignee_id"`
	EstimatedHours float64      `json:"estimatedHours,omitempty" db:"estimated_hours"`
	DueDate        *time.Time   `json:"dueDate,omitempty" db:"due_date"`
	CompletedDate  *time.Time   `json:"completedDate,omitempty" db:"completed_date"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`

	// Joined read-only fields populated by list queries
	Creator         *UserSummary `json:"creator,omitempty"`
	Assignee        *UserSummary `json:"assignee,omitempty"`
	ProjectName     string       `json:"projectName,omitempty"`
	ProjectCategory string       `json:"-"`
}

// ValidTaskStatus reports whether s is an accepted task status.
func ValidTaskStatus(s string) bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidTaskPriority reports whether p is an accepted task priority.
func ValidTaskPriority(p string) bool {
	for _, known := range TaskPriorities {
		if p == known {
			return true
		}
	}
	return false
}
