package documents

import "taskboard/internal/domain/models"

// filterByCategory keeps documents whose category matches exactly.
// Empty and the "all" sentinel bypass filtering. Relative order is
// preserved, and the result is never nil.
func filterByCategory(docs []models.Document, category string) []models.Document {
	if category == "" || category == models.CategoryAll {
		return docs
	}
	filtered := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Category == category {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// groupByFolder partitions documents into folders keyed by their Folder
// field. Folder order follows first occurrence in the input; documents
// inside a bucket keep their input order.
func groupByFolder(docs []models.Document) *models.FolderSet {
	folders := models.NewFolderSet()
	for _, doc := range docs {
		folders.Add(doc)
	}
	return folders
}
