package service

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"
	"unicode"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
	"taskboard/internal/domain/services"
)

// maxImportEntryBytes caps how much of a single archive entry is read
// during import validation.
const maxImportEntryBytes = 10 << 20

type archiveService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	logger      *slog.Logger
}

// NewArchiveService creates a project archive export/import service
func NewArchiveService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	logger *slog.Logger,
) services.ArchiveService {
	return &archiveService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// slugify reduces a name to a safe file name fragment: letters and
// digits are lowercased, everything else collapses to underscores.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// writeProjectEntries writes one project's export files under prefix
// ("" for single-project exports).
func writeProjectEntries(zw *zip.Writer, prefix string, project *models.Project, tasks []models.Task) error {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	w, err := zw.Create(prefix + "project_data.json")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	for i := range tasks {
		t := &tasks[i]
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal task %s: %w", t.ID, err)
		}
		name := fmt.Sprintf("%stasks/task_%d_%s.json", prefix, i+1, slugify(t.Title))
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	readme := fmt.Sprintf(
		"Project export: %s\nExported: %s\nTasks: %d\nAttachments: %d\n",
		project.Name,
		time.Now().Format(time.RFC3339),
		len(tasks),
		len(project.Attachments),
	)
	w, err = zw.Create(prefix + "README.txt")
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(readme))
	return err
}

func (s *archiveService) ExportProject(ctx context.Context, projectID, userID string, w io.Writer) (string, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if !project.VisibleTo(userID) {
		return "", &domain.ForbiddenError{Message: "access denied"}
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	zw := zip.NewWriter(w)
	if err := writeProjectEntries(zw, "", project, tasks); err != nil {
		zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("project_%s_%s.zip", slugify(project.Name), time.Now().Format("2006-01-02"))
	s.logger.Info("project exported", "project_id", projectID, "tasks", len(tasks))
	return name, nil
}

func (s *archiveService) ExportAll(ctx context.Context, userID string, w io.Writer) (string, error) {
	projects, err := s.projectRepo.ListVisible(ctx, userID)
	if err != nil {
		return "", err
	}

	zw := zip.NewWriter(w)

	type projectSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Status   string `json:"status"`
	}
	summaries := make([]projectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = projectSummary{ID: p.ID, Name: p.Name, Category: p.Category, Status: p.Status}
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		zw.Close()
		return "", err
	}
	entry, err := zw.Create("projects_list.json")
	if err != nil {
		zw.Close()
		return "", err
	}
	if _, err := entry.Write(data); err != nil {
		zw.Close()
		return "", err
	}

	for i := range projects {
		p := &projects[i]
		tasks, err := s.taskRepo.ListByProject(ctx, p.ID)
		if err != nil {
			zw.Close()
			return "", err
		}
		prefix := fmt.Sprintf("projects/%s/", slugify(p.Name))
		if err := writeProjectEntries(zw, prefix, p, tasks); err != nil {
			zw.Close()
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("all_projects_%s.zip", time.Now().Format("2006-01-02"))
	s.logger.Info("all projects exported", "user_id", userID, "projects", len(projects))
	return name, nil
}

// entryType classifies an archive entry by its extension.
func entryType(name string, isDir bool) string {
	if isDir {
		return "directory"
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "file"
	}
	return ext
}

func compressionRatio(uncompressed, compressed uint64) string {
	if uncompressed == 0 {
		return "0.0%"
	}
	saved := 1 - float64(compressed)/float64(uncompressed)
	return fmt.Sprintf("%.1f%%", saved*100)
}

func (s *archiveService) Inspect(ctx context.Context, archive io.ReaderAt, size int64) (*services.ArchiveInspection, error) {
	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid or corrupted archive"}
	}

	inspection := &services.ArchiveInspection{Files: make([]services.ArchiveEntry, 0, len(zr.File))}
	for _, f := range zr.File {
		isDir := f.FileInfo().IsDir()
		inspection.Files = append(inspection.Files, services.ArchiveEntry{
			Name:             f.Name,
			Size:             f.UncompressedSize64,
			CompressedSize:   f.CompressedSize64,
			CompressionRatio: compressionRatio(f.UncompressedSize64, f.CompressedSize64),
			Type:             entryType(f.Name, isDir),
			IsDirectory:      isDir,
		})
		if !isDir {
			inspection.TotalFiles++
			inspection.TotalSize += f.UncompressedSize64
			inspection.CompressedSize += f.CompressedSize64
		}
	}

	sort.Slice(inspection.Files, func(i, j int) bool {
		return inspection.Files[i].Name < inspection.Files[j].Name
	})
	return inspection, nil
}

// classifyImport maps an archive entry name to an import file type.
func classifyImport(name string) string {
	base := path.Base(name)
	switch {
	case base == "project_data.json":
		return "project_data"
	case strings.Contains(name, "tasks/") && strings.HasSuffix(name, ".json"):
		return "task_data"
	default:
		return "other"
	}
}

func (s *archiveService) ImportProject(ctx context.Context, projectID, userID string, archive io.ReaderAt, size int64) (*services.ImportResult, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID && project.MemberRole(userID) != models.MemberRoleAdmin {
		return nil, &domain.ForbiddenError{Message: "only the owner or an admin member can import"}
	}

	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid or corrupted archive"}
	}

	result := &services.ImportResult{Files: []services.ImportedFile{}}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		kind := classifyImport(f.Name)
		if kind != "other" {
			rc, err := f.Open()
			if err != nil {
				result.Errors = append(result.Errors, services.ImportError{File: f.Name, Error: err.Error()})
				continue
			}
			data, err := io.ReadAll(io.LimitReader(rc, maxImportEntryBytes))
			rc.Close()
			if err != nil {
				result.Errors = append(result.Errors, services.ImportError{File: f.Name, Error: err.Error()})
				continue
			}
			if !json.Valid(data) {
				result.Errors = append(result.Errors, services.ImportError{File: f.Name, Error: "invalid JSON"})
				continue
			}
		}

		result.Files = append(result.Files, services.ImportedFile{
			Name: f.Name,
			Type: kind,
			Size: f.UncompressedSize64,
		})
		result.ImportedFiles++
	}

	s.logger.Info("archive imported",
		"project_id", projectID,
		"imported", result.ImportedFiles,
		"errors", len(result.Errors),
	)
	return result, nil
}
