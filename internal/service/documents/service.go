// Package documents aggregates tasks and project attachments into a
// uniform document listing: normalize, filter, group into folders, sort,
// and derive statistics. Everything here is computed per request from
// the project and task stores; nothing is persisted.
package documents

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
	"taskboard/internal/domain/services"
)

type documentService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	logger      *slog.Logger
}

// NewDocumentService creates a document aggregation service backed by
// the given project and task repositories.
func NewDocumentService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// emptyListing is the canonical zero result: non-nil documents slice,
// an empty folder set, and zeroed stats with an initialized category
// map, so callers and JSON encoding never see nulls.
func emptyListing() *services.DocumentListing {
	return &services.DocumentListing{
		Documents: []models.Document{},
		Folders:   models.NewFolderSet(),
		Stats: models.Stats{
			ByCategory: make(map[string]int),
		},
	}
}

func (s *documentService) ListAll(ctx context.Context, userID string, opts services.ListOptions) (*services.DocumentListing, error) {
	projects, err := s.projectRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return emptyListing(), nil
	}

	projectIDs := make([]string, len(projects))
	for i, p := range projects {
		projectIDs[i] = p.ID
	}

	// Tasks come from the store while attachments are normalized off the
	// already-loaded projects, so the two halves run concurrently.
	var (
		tasks          []models.Task
		attachmentDocs []models.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListForProjects(gctx, projectIDs, opts.Search)
		return err
	})
	g.Go(func() error {
		for i := range projects {
			p := &projects[i]
			for _, att := range p.Attachments {
				attachmentDocs = append(attachmentDocs, fromAttachment(p, att))
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(tasks)+len(attachmentDocs))
	for i := range tasks {
		t := &tasks[i]
		docs = append(docs, fromTask(t, t.ProjectName, t.ProjectCategory))
	}
	docs = append(docs, attachmentDocs...)

	listing := assemble(docs, opts)
	s.logger.Debug("aggregated documents",
		"user_id", userID,
		"projects", len(projects),
		"documents", listing.Stats.Total,
	)
	return listing, nil
}

func (s *documentService) ListProject(ctx context.Context, userID, projectID string, opts services.ListOptions) (*services.DocumentListing, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(userID) {
		return nil, &domain.ForbiddenError{Message: "access denied"}
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(tasks)+len(project.Attachments))
	for i := range tasks {
		docs = append(docs, fromTask(&tasks[i], project.Name, project.Category))
	}
	for _, att := range project.Attachments {
		docs = append(docs, fromAttachment(project, att))
	}

	listing := assemble(docs, opts)
	listing.ProjectName = project.Name
	return listing, nil
}

func (s *documentService) ListCategories(ctx context.Context, userID string) (*services.CategoryListing, error) {
	projects, err := s.projectRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, p := range projects {
		if p.Category != "" {
			seen[p.Category] = true
		}
	}

	if len(projects) > 0 {
		projectIDs := make([]string, len(projects))
		for i, p := range projects {
			projectIDs[i] = p.ID
		}
		tasks, err := s.taskRepo.ListForProjects(ctx, projectIDs, "")
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			if tasks[i].Category != "" {
				seen[tasks[i].Category] = true
			}
		}
	}

	// Attachments are always listable under their own pseudo-category,
	// whether or not any exist right now.
	seen[models.AttachmentsCategory] = true

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &services.CategoryListing{
		Categories: categories,
		Total:      len(categories),
	}, nil
}

// assemble runs the shared tail of both listing operations: filter,
// group, sort, and compute stats over an already-normalized document
// set.
func assemble(docs []models.Document, opts services.ListOptions) *services.DocumentListing {
	filtered := filterByCategory(docs, opts.Category)
	folders := groupByFolder(filtered)
	sortFolders(folders, opts.SortBy, opts.Order)

	return &services.DocumentListing{
		Documents: filtered,
		Folders:   folders,
		Stats:     computeStats(filtered, folders),
	}
}
