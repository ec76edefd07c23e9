package services

// Sort modes for document listings
const (
	SortByDate     = "date"
	SortByName     = "name"
	SortByPriority = "priority"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListOptions is the immutable option set for a document listing
// request. Construct with NewListOptions so defaults are applied in one
// place; malformed values are defaulted, never rejected.
type ListOptions struct {
	// Category filters documents by exact (case-sensitive) category
	// match. Empty or "all" means no filtering.
	Category string

	// SortBy selects the comparator: date, name, or priority. Any other
	// value leaves bucket order untouched.
	SortBy string

	// Order is asc or desc. The priority comparator ignores it.
	Order string

	// Search narrows tasks by case-insensitive substring over title,
	// description, and tags before aggregation.
	Search string
}

// NewListOptions applies the documented defaults: sortBy=date,
// order=desc. Unrecognized order values fall back to desc; unrecognized
// sortBy values are kept verbatim so sorting degrades to a no-op.
func NewListOptions(category, sortBy, order, search string) ListOptions {
	if sortBy == "" {
		sortBy = SortByDate
	}
	if order != OrderAsc && order != OrderDesc {
		order = OrderDesc
	}
	return ListOptions{
		Category: category,
		SortBy:   sortBy,
		Order:    order,
		Search:   search,
	}
}
