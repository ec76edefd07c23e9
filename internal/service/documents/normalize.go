package documents

import (
	"fmt"
	"time"

	"taskboard/internal/domain/models"
)

// resolveFolder derives the grouping key from a resolved category.
// Always non-empty: documents without a category land in the
// uncategorized bucket.
func resolveFolder(category string) string {
	if category == "" {
		return models.FolderUncategorized
	}
	return category
}

// fromTask normalizes a task into a Document. Pure over its inputs; the
// source task is not mutated. The category chain is task category, then
// owning project category, then the uncategorized sentinel.
//
// A zero CreatedAt falls back to the current time. The fallback is
// computed per call, so repeated normalization of the same
// un-timestamped record yields different values; that behavior is
// intentional and documented in the API contract.
func fromTask(task *models.Task, projectName, projectCategory string) models.Document {
	category := task.Category
	if category == "" {
		category = projectCategory
	}

	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return models.Document{
		ID:          task.ID,
		Title:       task.Title,
		Kind:        models.DocumentKindTask,
		ProjectID:   task.ProjectID,
		ProjectName: projectName,
		Category:    category,
		CreatedAt:   createdAt,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Creator:     task.Creator,
		Assignee:    task.Assignee,
		DueDate:     task.DueDate,
		Tags:        task.Tags,
		Folder:      resolveFolder(category),
	}
}

// fromAttachment normalizes a project attachment into a Document.
// Attachments have no identifier of their own, so one is synthesized
// from the project ID and the attachment name; they inherit the owning
// project's category, and their creation time is the upload time.
func fromAttachment(project *models.Project, att models.Attachment) models.Document {
	uploadedAt := att.UploadedAt

	return models.Document{
		ID:          fmt.Sprintf("att_%s_%s", project.ID, att.Name),
		Title:       att.Name,
		Kind:        models.DocumentKindAttachment,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Category:    project.Category,
		CreatedAt:   uploadedAt,
		UploadedBy:  att.UploadedBy,
		UploadedAt:  &uploadedAt,
		URL:         att.URL,
		Folder:      resolveFolder(project.Category),
	}
}
