package services

import (
	"context"

	"taskboard/internal/domain/models"
)

// DocumentListing is the aggregated output of a document listing:
// the flat filtered set, its folder grouping, and derived statistics.
// ProjectName is set only for single-project listings.
type DocumentListing struct {
	Documents   []models.Document `json:"documents"`
	Folders     *models.FolderSet `json:"folders"`
	Stats       models.Stats      `json:"stats"`
	ProjectName string            `json:"projectName,omitempty"`
}

// CategoryListing is the deduplicated, sorted category list across a
// user's visible projects and their tasks.
type CategoryListing struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

// DocumentService defines the document aggregation operations
type DocumentService interface {
	// ListAll aggregates tasks and attachments across every project
	// visible to the user
	ListAll(ctx context.Context, userID string, opts ListOptions) (*DocumentListing, error)

	// ListProject aggregates one project's documents; visibility is
	// re-verified even when the project was fetched before
	ListProject(ctx context.Context, userID, projectID string, opts ListOptions) (*DocumentListing, error)

	// ListCategories returns every category seen across visible projects
	// and their tasks, plus the fixed attachments sentinel
	ListCategories(ctx context.Context, userID string) (*CategoryListing, error)
}
