package documents

import (
	"testing"
	"time"

	"taskboard/internal/domain/models"
	"taskboard/internal/domain/services"
)

func docIDs(docs []models.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func buildFolders(docs []models.Document) *models.FolderSet {
	for i := range docs {
		docs[i].Folder = "f"
	}
	return groupByFolder(docs)
}

func TestSortFoldersByName(t *testing.T) {
	docs := []models.Document{
		{ID: "b", Title: "beta"},
		{ID: "a", Title: "alpha"},
		{ID: "c", Title: "gamma"},
	}

	tests := []struct {
		name  string
		order string
		want  []string
	}{
		{"ascending", services.OrderAsc, []string{"a", "b", "c"}},
		{"descending", services.OrderDesc, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := buildFolders(append([]models.Document(nil), docs...))
			sortFolders(fs, services.SortByName, tt.order)
			if got := docIDs(fs.Get("f")); !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortFoldersByDate(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.Document{
		{ID: "mid", CreatedAt: base.AddDate(0, 0, 5)},
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.AddDate(0, 0, 9)},
	}

	fs := buildFolders(append([]models.Document(nil), docs...))
	sortFolders(fs, services.SortByDate, services.OrderDesc)
	if got := docIDs(fs.Get("f")); !equalIDs(got, []string{"new", "mid", "old"}) {
		t.Errorf("desc: got %v", got)
	}

	fs = buildFolders(append([]models.Document(nil), docs...))
	sortFolders(fs, services.SortByDate, services.OrderAsc)
	if got := docIDs(fs.Get("f")); !equalIDs(got, []string{"old", "mid", "new"}) {
		t.Errorf("asc: got %v", got)
	}
}

func TestSortFoldersByPriority(t *testing.T) {
	docs := []models.Document{
		{ID: "low", Priority: models.TaskPriorityLow},
		{ID: "urgent", Priority: models.TaskPriorityUrgent},
		{ID: "none"}, // attachments have no priority and sort last
		{ID: "high", Priority: models.TaskPriorityHigh},
		{ID: "medium", Priority: models.TaskPriorityMedium},
	}
	want := []string{"urgent", "high", "medium", "low", "none"}

	// The priority comparator is most-urgent-first regardless of the
	// requested order.
	for _, order := range []string{services.OrderAsc, services.OrderDesc} {
		fs := buildFolders(append([]models.Document(nil), docs...))
		sortFolders(fs, services.SortByPriority, order)
		if got := docIDs(fs.Get("f")); !equalIDs(got, want) {
			t.Errorf("order=%s: got %v, want %v", order, got, want)
		}
	}
}

func TestSortFoldersStable(t *testing.T) {
	docs := []models.Document{
		{ID: "first", Priority: models.TaskPriorityHigh},
		{ID: "second", Priority: models.TaskPriorityHigh},
		{ID: "third", Priority: models.TaskPriorityHigh},
	}

	fs := buildFolders(append([]models.Document(nil), docs...))
	sortFolders(fs, services.SortByPriority, services.OrderAsc)
	if got := docIDs(fs.Get("f")); !equalIDs(got, []string{"first", "second", "third"}) {
		t.Errorf("equal priorities reordered: %v", got)
	}
}

func TestSortFoldersUnknownComparator(t *testing.T) {
	docs := []models.Document{
		{ID: "z", Title: "zed"},
		{ID: "a", Title: "aye"},
	}

	fs := buildFolders(append([]models.Document(nil), docs...))
	sortFolders(fs, "relevance", services.OrderAsc)
	if got := docIDs(fs.Get("f")); !equalIDs(got, []string{"z", "a"}) {
		t.Errorf("unknown comparator changed order: %v", got)
	}
}

func TestSortFoldersPerBucket(t *testing.T) {
	docs := []models.Document{
		{ID: "b1", Title: "zzz", Folder: "one"},
		{ID: "a1", Title: "aaa", Folder: "one"},
		{ID: "b2", Title: "yyy", Folder: "two"},
		{ID: "a2", Title: "bbb", Folder: "two"},
	}
	fs := groupByFolder(docs)

	sortFolders(fs, services.SortByName, services.OrderAsc)

	// Buckets are sorted independently and folder order is untouched.
	if !equalIDs(fs.Names(), []string{"one", "two"}) {
		t.Errorf("folder order changed: %v", fs.Names())
	}
	if got := docIDs(fs.Get("one")); !equalIDs(got, []string{"a1", "b1"}) {
		t.Errorf("folder one: %v", got)
	}
	if got := docIDs(fs.Get("two")); !equalIDs(got, []string{"a2", "b2"}) {
		t.Errorf("folder two: %v", got)
	}
}
