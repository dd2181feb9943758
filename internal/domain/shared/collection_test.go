package shared

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Record
	Name string
}

func newTestRecords(t *testing.T, names ...string) ([]testRecord, *sharedtest.FakeClock) {
	clock := sharedtest.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	items := make([]testRecord, 0, len(names))
	for _, name := range names {
		items = append(items, testRecord{
			Record: Record{ID: name, CreatedAt: clock.Now(), UpdatedAt: clock.Now()},
			Name:   name,
		})
		clock.Advance(time.Minute)
	}
	require.Len(t, items, len(names))
	return items, clock
}

func TestFind(t *testing.T) {
	items, _ := newTestRecords(t, "a", "b")

	rec, ok := Find(items, "b")
	require.True(t, ok)
	assert.Equal(t, "b", rec.Name)

	_, ok = Find(items, "missing")
	assert.False(t, ok)
}

func TestAppend_DoesNotAliasInput(t *testing.T) {
	items, _ := newTestRecords(t, "a")
	items = items[:1:1]

	next := Append(items, testRecord{Record: Record{ID: "b"}})

	assert.Len(t, items, 1)
	assert.Len(t, next, 2)
	assert.Equal(t, "b", next[1].ID)
}

func TestReplace_MovesEntryToEnd(t *testing.T) {
	items, _ := newTestRecords(t, "a", "b", "c")

	updated := items[0]
	updated.Name = "renamed"
	next := Replace(items, updated)

	require.Len(t, next, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{next[0].ID, next[1].ID, next[2].ID})
	assert.Equal(t, "renamed", next[2].Name)
	assert.Equal(t, "a", items[0].Name, "input must not change")
}

func TestSoftDelete(t *testing.T) {
	t.Run("flags matching records and returns pre-deletion snapshots", func(t *testing.T) {
		items, clock := newTestRecords(t, "a", "b")

		next, removed := SoftDelete(items, []string{"a", "zzz"}, clock.Now())

		require.Len(t, removed, 1)
		assert.Equal(t, "a", removed[0].ID)
		assert.False(t, removed[0].IsDeleted)
		require.Len(t, next, 2)
		assert.True(t, next[0].IsDeleted)
		assert.False(t, next[1].IsDeleted)
		assert.False(t, items[0].IsDeleted, "input must not change")
	})

	t.Run("returns nil when nothing matched", func(t *testing.T) {
		items, clock := newTestRecords(t, "a")

		next, removed := SoftDelete(items, []string{"nope"}, clock.Now())

		assert.Nil(t, removed)
		assert.Equal(t, items, next)
	})
}

func TestRestore_RoundTrip(t *testing.T) {
	items, clock := newTestRecords(t, "a", "b")

	deleted, _ := SoftDelete(items, []string{"a"}, clock.Now())
	clock.Advance(time.Second)
	restored, affected := Restore(deleted, []string{"a"}, clock.Now())

	require.Len(t, affected, 1)
	assert.False(t, affected[0].IsDeleted)
	assert.Equal(t, items[0].ID, restored[0].ID)
	assert.Equal(t, items[0].Name, restored[0].Name)
	assert.Equal(t, items[0].CreatedAt, restored[0].CreatedAt)
	assert.False(t, restored[0].IsDeleted)

	_, none := Restore(deleted, []string{"ghost"}, clock.Now())
	assert.Nil(t, none)
}

func TestPurge(t *testing.T) {
	items, _ := newTestRecords(t, "a", "b", "c")

	next, removed := Purge(items, []string{"b"})
	require.Len(t, removed, 1)
	assert.Equal(t, "b", removed[0].ID)
	assert.Len(t, next, 2)

	same, none := Purge(items, []string{"x"})
	assert.Nil(t, none)
	assert.Len(t, same, 3)
}

func TestActiveAndSorted(t *testing.T) {
	items, clock := newTestRecords(t, "c", "a", "b")
	items, _ = SoftDelete(items, []string{"a"}, clock.Now())

	active := Active(items)
	assert.Len(t, active, 2)

	shuffled := []testRecord{items[2], items[0], items[1]}
	sorted := Sorted(shuffled)
	assert.Equal(t, []string{"c", "a", "b"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestModify(t *testing.T) {
	items, _ := newTestRecords(t, "a", "b", "c")

	next, changed := Modify(items, []string{"a", "c", "zz"}, func(r *testRecord) bool {
		if r.ID == "c" {
			return false
		}
		r.Name = "renamed"
		return true
	})

	require.Len(t, changed, 1)
	assert.Equal(t, "renamed", changed[0].Name)
	assert.Equal(t, "renamed", next[0].Name)
	assert.Equal(t, "a", items[0].Name, "input must not change")

	same, none := Modify(items, []string{"zz"}, func(*testRecord) bool { return true })
	assert.Nil(t, none)
	assert.Equal(t, items, same)
}
