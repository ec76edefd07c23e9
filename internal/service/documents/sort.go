package documents

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/domain/models"
	"taskboard/internal/domain/services"
)

// priorityRank orders priorities most-urgent-first. Unknown priorities
// rank after every known one.
var priorityRank = map[string]int{
	models.TaskPriorityUrgent: 0,
	models.TaskPriorityHigh:   1,
	models.TaskPriorityMedium: 2,
	models.TaskPriorityLow:    3,
}

func rankOf(priority string) int {
	if rank, ok := priorityRank[priority]; ok {
		return rank
	}
	return len(priorityRank)
}

// sortFolders orders each folder's documents in place according to the
// requested comparator. Folder order itself is never changed. All three
// comparators are stable, so equal documents keep their input order.
//
// The priority comparator always sorts most-urgent-first and ignores
// Order; that asymmetry is part of the API contract.
func sortFolders(folders *models.FolderSet, sortBy, order string) {
	desc := order == services.OrderDesc

	switch sortBy {
	case services.SortByName:
		coll := collate.New(language.Und)
		for _, name := range folders.Names() {
			docs := folders.Get(name)
			sort.SliceStable(docs, func(i, j int) bool {
				cmp := coll.CompareString(docs[i].Title, docs[j].Title)
				if desc {
					return cmp > 0
				}
				return cmp < 0
			})
		}
	case services.SortByDate:
		for _, name := range folders.Names() {
			docs := folders.Get(name)
			sort.SliceStable(docs, func(i, j int) bool {
				if desc {
					return docs[i].CreatedAt.After(docs[j].CreatedAt)
				}
				return docs[i].CreatedAt.Before(docs[j].CreatedAt)
			})
		}
	case services.SortByPriority:
		for _, name := range folders.Names() {
			docs := folders.Get(name)
			sort.SliceStable(docs, func(i, j int) bool {
				return rankOf(docs[i].Priority) < rankOf(docs[j].Priority)
			})
		}
	default:
		// Unknown comparator: leave bucket order untouched.
	}
}
