package dto

import "github.com/fieldstack/isp-ops-service/internal/filterlist"

// ListResponse is the envelope for every collection listing: the page of
// matching rows plus the counts a table renderer needs.
type ListResponse[T any] struct {
	Items    []T    `json:"items"`
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Query    string `json:"query,omitempty"`
}

// NewListResponse slices one page out of a filter snapshot. A page past the
// end yields empty items, never an error.
func NewListResponse[T any](snap filterlist.Snapshot[T]) ListResponse[T] {
	start := snap.Page * snap.PageSize
	if start > len(snap.Items) {
		start = len(snap.Items)
	}
	end := start + snap.PageSize
	if end > len(snap.Items) {
		end = len(snap.Items)
	}
	items := snap.Items[start:end]
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:    items,
		Total:    snap.Total,
		Filtered: snap.Filtered,
		Page:     snap.Page,
		PageSize: snap.PageSize,
		Query:    snap.Query,
	}
}
