package services

import "testing"

func TestNewListOptions(t *testing.T) {
	tests := []struct {
		name                           string
		category, sortBy, order, search string
		want                           ListOptions
	}{
		{
			name: "defaults",
			want: ListOptions{SortBy: SortByDate, Order: OrderDesc},
		},
		{
			name:  "explicit values kept",
			category: "design", sortBy: SortByName, order: OrderAsc, search: "kick",
			want: ListOptions{Category: "design", SortBy: SortByName, Order: OrderAsc, Search: "kick"},
		},
		{
			name:  "unknown order falls back to desc",
			order: "sideways",
			want:  ListOptions{SortBy: SortByDate, Order: OrderDesc},
		},
		{
			name:   "unknown sortBy kept verbatim",
			sortBy: "relevance",
			want:   ListOptions{SortBy: "relevance", Order: OrderDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewListOptions(tt.category, tt.sortBy, tt.order, tt.search)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
