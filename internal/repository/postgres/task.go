package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// taskSelect joins creator/assignee summaries and the owning project's
// name and category onto each task row.
func (r *PostgresTaskRepository) taskSelect() string {
	return fmt.Sprintf(`
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority,
			t.category, t.tags, t.creator_id, t.assignee_id, t.estimated_hours,
			t.due_date, t.completed_date, t.created_at, t.updated_at,
			c.username, c.email,
			a.username, a.email,
			p.name, p.category
		FROM %s t
		JOIN %s p ON p.id = t.project_id
		LEFT JOIN %s c ON c.id = t.creator_id
		LEFT JOIN %s a ON a.id = t.assignee_id
	`, r.tables.Tasks, r.tables.Projects, r.tables.Users, r.tables.Users)
}

// Create inserts a new task
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, title, description, status, priority, category,
			tags, creator_id, assignee_id, estimated_hours, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Tasks)

	task.ID = uuid.NewString()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	var assigneeID interface{}
	if task.AssigneeID != "" {
		assigneeID = task.AssigneeID
	}

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.Tags,
		task.CreatorID,
		assigneeID,
		task.EstimatedHours,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", task.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task with references joined in
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := r.taskSelect() + ` WHERE t.id = $1`

	executor := GetExecutor(ctx, r.pool)
	task, err := scanTask(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// ListForProjects retrieves all tasks belonging to the project set,
// optionally narrowed by a case-insensitive substring search over title,
// description, and tags
func (r *PostgresTaskRepository) ListForProjects(ctx context.Context, projectIDs []string, search string) ([]models.Task, error) {
	query := r.taskSelect() + ` WHERE t.project_id = ANY($1)`
	args := []interface{}{projectIDs}

	if search != "" {
		query += `
		AND (t.title ILIKE $2 OR t.description ILIKE $2
			OR EXISTS (SELECT 1 FROM unnest(t.tags) AS tag WHERE tag ILIKE $2))`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY t.created_at DESC`

	return r.queryTasks(ctx, query, args...)
}

// ListByProject retrieves a single project's tasks, due date ascending
func (r *PostgresTaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	query := r.taskSelect() + ` WHERE t.project_id = $1 ORDER BY t.due_date ASC NULLS LAST`
	return r.queryTasks(ctx, query, projectID)
}

// ListFiltered retrieves tasks matching the filter, due date ascending
func (r *PostgresTaskRepository) ListFiltered(ctx context.Context, filter repositories.TaskFilter) ([]models.Task, error) {
	query := r.taskSelect() + ` WHERE 1=1`
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.Status != "" {
		add(" AND t.status = $%d", filter.Status)
	}
	if filter.Priority != "" {
		add(" AND t.priority = $%d", filter.Priority)
	}
	if filter.AssigneeID != "" {
		add(" AND t.assignee_id = $%d", filter.AssigneeID)
	}
	if filter.ProjectID != "" {
		add(" AND t.project_id = $%d", filter.ProjectID)
	}

	query += ` ORDER BY t.due_date ASC NULLS LAST`

	return r.queryTasks(ctx, query, args...)
}

// Update rewrites a task's mutable fields
func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, status = $3, priority = $4, category = $5,
			tags = $6, assignee_id = $7, estimated_hours = $8, due_date = $9,
			completed_date = $10, updated_at = $11
		WHERE id = $12
	`, r.tables.Tasks)

	task.UpdatedAt = time.Now()

	var assigneeID interface{}
	if task.AssigneeID != "" {
		assigneeID = task.AssigneeID
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.Tags,
		assigneeID,
		task.EstimatedHours,
		task.DueDate,
		task.CompletedDate,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a task row
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByProject removes all tasks of a project
func (r *PostgresTaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}

	return nil
}

// queryTasks runs a task select and scans all rows
func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks, nil
}

// scanTask scans one joined task row
func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var assigneeID *string
	var creatorName, creatorEmail *string
	var assigneeName, assigneeEmail *string

	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Category,
		&task.Tags,
		&task.CreatorID,
		&assigneeID,
		&task.EstimatedHours,
		&task.DueDate,
		&task.CompletedDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&creatorName,
		&creatorEmail,
		&assigneeName,
		&assigneeEmail,
		&task.ProjectName,
		&task.ProjectCategory,
	)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		task.AssigneeID = *assigneeID
	}
	if creatorName != nil {
		task.Creator = &models.UserSummary{Username: *creatorName, Email: stringValue(creatorEmail)}
	}
	if assigneeName != nil {
		task.Assignee = &models.UserSummary{Username: *assigneeName, Email: stringValue(assigneeEmail)}
	}

	return &task, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
