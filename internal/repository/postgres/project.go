package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface.
// Members and attachments live in JSONB columns on the project row,
// mirroring the embedded arrays of the document-store schema this
// replaced; tags use a text[] column.
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, name, description, owner_id, members, category, status, priority,
		start_date, due_date, progress, tags, attachments, created_at, updated_at`

// Create inserts a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, r.tables.Projects, projectColumns)

	project.ID = uuid.NewString()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	members, err := json.Marshal(project.Members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}
	attachments, err := json.Marshal(project.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
		members,
		project.Category,
		project.Status,
		project.Priority,
		project.StartDate,
		project.DueDate,
		project.Progress,
		project.Tags,
		attachments,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// ListVisible retrieves all projects the user owns or is a member of,
// ordered by created_at DESC
func (r *PostgresProjectRepository) ListVisible(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
		   OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(members) AS m
				WHERE m->>'userId' = $1
		   )
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	// Return empty slice instead of nil if no projects
	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// Update rewrites a project's mutable fields
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, members = $3, category = $4, status = $5,
			priority = $6, start_date = $7, due_date = $8, progress = $9, tags = $10,
			attachments = $11, updated_at = $12
		WHERE id = $13
	`, r.tables.Projects)

	project.UpdatedAt = time.Now()

	members, err := json.Marshal(project.Members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}
	attachments, err := json.Marshal(project.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Name,
		project.Description,
		members,
		project.Category,
		project.Status,
		project.Priority,
		project.StartDate,
		project.DueDate,
		project.Progress,
		project.Tags,
		attachments,
		project.UpdatedAt,
		project.ID,
	)

	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProject scans one project row, decoding the JSONB columns
func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var members, attachments []byte

	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&members,
		&project.Category,
		&project.Status,
		&project.Priority,
		&project.StartDate,
		&project.DueDate,
		&project.Progress,
		&project.Tags,
		&attachments,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(members, &project.Members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if err := json.Unmarshal(attachments, &project.Attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}

	return &project, nil
}
