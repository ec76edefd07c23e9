package documents

import "taskboard/internal/domain/models"

// computeStats derives aggregate counts in a single pass over the flat
// filtered set, then reads per-category counts off the folder grouping
// so the two views always agree.
func computeStats(docs []models.Document, folders *models.FolderSet) models.Stats {
	stats := models.Stats{
		Total:      len(docs),
		ByCategory: make(map[string]int, folders.Len()),
	}

	for _, doc := range docs {
		switch doc.Kind {
		case models.DocumentKindTask:
			stats.ByType.Tasks++
		case models.DocumentKindAttachment:
			stats.ByType.Attachments++
		}

		switch doc.Status {
		case models.TaskStatusTodo:
			stats.ByStatus.Todo++
		case models.TaskStatusInProgress:
			stats.ByStatus.InProgress++
		case models.TaskStatusReview:
			stats.ByStatus.Review++
		case models.TaskStatusDone:
			stats.ByStatus.Done++
		case models.TaskStatusBlocked:
			stats.ByStatus.Blocked++
		}
	}

	for _, name := range folders.Names() {
		stats.ByCategory[name] = len(folders.Get(name))
	}

	return stats
}
