// Package filterlist provides the generic list view reused by every table
// surface: free-text search with debounce, named filter composition and
// advisory pagination state.
package filterlist

import (
	"strings"
	"sync"
	"time"
)

// Sentinel filter value treated as "no constraint".
const All = "all"

// DefaultDebounce is the quiescence window before a raw query is committed.
const DefaultDebounce = 300 * time.Millisecond

// Filter is a tagged variant: either an equality match against a named field
// or an arbitrary row predicate.
type Filter[T any] struct {
	equals    string
	field     func(T) string
	predicate func(T) bool
	active    bool
}

// Equals builds an equality filter. The values "" and "all" deactivate it.
func Equals[T any](field func(T) string, value string) Filter[T] {
	return Filter[T]{
		equals: value,
		field:  field,
		active: value != "" && value != All,
	}
}

// Predicate builds a predicate filter; it overrides equality comparison.
func Predicate[T any](fn func(T) bool) Filter[T] {
	return Filter[T]{predicate: fn, active: fn != nil}
}

func (f Filter[T]) matches(row T) bool {
	if !f.active {
		return true
	}
	if f.predicate != nil {
		return f.predicate(row)
	}
	return f.field(row) == f.equals
}

// Config describes a view over one collection.
type Config[T any] struct {
	// SearchFields are the extractors searched by the committed query,
	// case-insensitive substring, OR across fields.
	SearchFields []func(T) string
	// InitialFilters seed the active filter set.
	InitialFilters map[string]Filter[T]
	PageSize       int
	// Debounce overrides DefaultDebounce; useful in tests.
	Debounce time.Duration
}

// Snapshot is the derived view handed to a table renderer. Pagination state
// is advisory: the items are not sliced into pages here.
type Snapshot[T any] struct {
	Items    []T
	Total    int
	Filtered int
	Page     int
	PageSize int
	Query    string
}

// View recomputes a filtered subset of a data sequence whenever the committed
// query, the filter set or the data changes. Filtering is pure and preserves
// the relative order of the input.
type View[T any] struct {
	mu       sync.Mutex
	data     []T
	fields   []func(T) string
	filters  map[string]Filter[T]
	rawQuery string
	query    string
	page     int
	pageSize int
	debounce time.Duration
	timer    *time.Timer
}

// NewView builds a view over data.
func NewView[T any](data []T, cfg Config[T]) *View[T] {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	filters := make(map[string]Filter[T], len(cfg.InitialFilters))
	for name, f := range cfg.InitialFilters {
		filters[name] = f
	}
	return &View[T]{
		data:     data,
		fields:   cfg.SearchFields,
		filters:  filters,
		pageSize: pageSize,
		debounce: debounce,
	}
}

// SetData replaces the underlying sequence, keeping query and filters.
func (v *View[T]) SetData(data []T) {
	v.mu.Lock()
	v.data = data
	v.mu.Unlock()
}

// SetQuery records raw search-box text; the committed query only updates
// after the debounce window elapses without further keystrokes.
func (v *View[T]) SetQuery(raw string) {
	v.mu.Lock()
	v.rawQuery = raw
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.debounce, func() {
		v.mu.Lock()
		v.query = v.rawQuery
		v.page = 0
		v.mu.Unlock()
	})
	v.mu.Unlock()
}

// CommitQuery applies the query immediately, bypassing the debounce.
func (v *View[T]) CommitQuery(query string) {
	v.mu.Lock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.rawQuery = query
	v.query = query
	v.page = 0
	v.mu.Unlock()
}

// SetFilter sets or replaces a named filter and resets to the first page.
func (v *View[T]) SetFilter(name string, filter Filter[T]) {
	v.mu.Lock()
	v.filters[name] = filter
	v.page = 0
	v.mu.Unlock()
}

// ClearFilter removes a named filter and resets to the first page.
func (v *View[T]) ClearFilter(name string) {
	v.mu.Lock()
	delete(v.filters, name)
	v.page = 0
	v.mu.Unlock()
}

// SetPage moves the advisory page index; negative values clamp to zero.
func (v *View[T]) SetPage(page int) {
	v.mu.Lock()
	if page < 0 {
		page = 0
	}
	v.page = page
	v.mu.Unlock()
}

// Snapshot recomputes the derived view: rows matching ALL active filters and,
// when a committed query is present, ANY search field by case-insensitive
// substring.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(v.query))
	items := make([]T, 0, len(v.data))
	for _, row := range v.data {
		if !v.matchesFiltersLocked(row) {
			continue
		}
		if query != "" && !v.matchesQueryLocked(row, query) {
			continue
		}
		items = append(items, row)
	}

	return Snapshot[T]{
		Items:    items,
		Total:    len(v.data),
		Filtered: len(items),
		Page:     v.page,
		PageSize: v.pageSize,
		Query:    v.query,
	}
}

func (v *View[T]) matchesFiltersLocked(row T) bool {
	for _, f := range v.filters {
		if !f.matches(row) {
			return false
		}
	}
	return true
}

func (v *View[T]) matchesQueryLocked(row T, query string) bool {
	for _, field := range v.fields {
		if strings.Contains(strings.ToLower(field(row)), query) {
			return true
		}
	}
	return false
}
