package filterlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name   string
	Status string
}

func nameField(r row) string   { return r.Name }
func statusField(r row) string { return r.Status }

func testRows() []row {
	return []row{
		{Name: "Ana", Status: "active"},
		{Name: "Bob", Status: "closed"},
		{Name: "Andrea", Status: "closed"},
	}
}

func newTestView(rows []row) *View[row] {
	return NewView(rows, Config[row]{
		SearchFields: []func(row) string{nameField},
		PageSize:     2,
	})
}

func TestSnapshotWithoutConstraintsReturnsEverything(t *testing.T) {
	v := newTestView(testRows())
	snap := v.Snapshot()

	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 3, snap.Filtered)
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, "Ana", snap.Items[0].Name, "input order is preserved")
}

func TestQueryMatchesCaseInsensitiveSubstring(t *testing.T) {
	v := newTestView(testRows())
	v.CommitQuery("an")

	snap := v.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Ana", snap.Items[0].Name)
	assert.Equal(t, "Andrea", snap.Items[1].Name)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.Filtered)
}

func TestEqualsFilter(t *testing.T) {
	v := newTestView(testRows())
	v.SetFilter("status", Equals(statusField, "closed"))

	snap := v.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Bob", snap.Items[0].Name)
	assert.Equal(t, "Andrea", snap.Items[1].Name)
}

func TestAllAndEmptyFilterValuesAreInactive(t *testing.T) {
	v := newTestView(testRows())

	v.SetFilter("status", Equals(statusField, All))
	assert.Len(t, v.Snapshot().Items, 3)

	v.SetFilter("status", Equals(statusField, ""))
	assert.Len(t, v.Snapshot().Items, 3)
}

func TestFiltersAndQueryCompose(t *testing.T) {
	v := newTestView(testRows())
	v.SetFilter("status", Equals(statusField, "closed"))
	v.CommitQuery("an")

	snap := v.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Andrea", snap.Items[0].Name)
}

func TestPredicateFilter(t *testing.T) {
	v := newTestView(testRows())
	v.SetFilter("short-name", Predicate(func(r row) bool { return len(r.Name) <= 3 }))

	snap := v.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Ana", snap.Items[0].Name)
	assert.Equal(t, "Bob", snap.Items[1].Name)
}

func TestFilterChangeResetsPage(t *testing.T) {
	v := newTestView(testRows())
	v.SetPage(4)
	require.Equal(t, 4, v.Snapshot().Page)

	v.SetFilter("status", Equals(statusField, "closed"))
	assert.Equal(t, 0, v.Snapshot().Page)

	v.SetPage(2)
	v.ClearFilter("status")
	assert.Equal(t, 0, v.Snapshot().Page)
}

func TestQueryCommitResetsPage(t *testing.T) {
	v := newTestView(testRows())
	v.SetPage(3)
	v.CommitQuery("an")
	assert.Equal(t, 0, v.Snapshot().Page)
}

func TestNegativePageClampsToZero(t *testing.T) {
	v := newTestView(testRows())
	v.SetPage(-5)
	assert.Equal(t, 0, v.Snapshot().Page)
}

func TestSetQueryDebounces(t *testing.T) {
	v := NewView(testRows(), Config[row]{
		SearchFields: []func(row) string{nameField},
		Debounce:     20 * time.Millisecond,
	})

	v.SetQuery("b")
	v.SetQuery("bo")
	v.SetQuery("bob")

	assert.Empty(t, v.Snapshot().Query, "query not committed before the window elapses")

	assert.Eventually(t, func() bool {
		return v.Snapshot().Query == "bob"
	}, time.Second, 5*time.Millisecond, "only the final keystroke commits")

	snap := v.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Bob", snap.Items[0].Name)
}

func TestSetDataKeepsQueryAndFilters(t *testing.T) {
	v := newTestView(testRows())
	v.CommitQuery("an")
	v.SetData(append(testRows(), row{Name: "Anton", Status: "active"}))

	snap := v.Snapshot()
	assert.Equal(t, 4, snap.Total)
	assert.Len(t, snap.Items, 3)
}
