package shared

import (
	"sort"
	"time"
)

// RecordPtr constrains P to a pointer to T that exposes the embedded Record.
// Every entity embedding Record satisfies it through the promoted Meta method.
type RecordPtr[T any] interface {
	*T
	Meta() *Record
}

// Find returns the record with the given ID
func Find[T any, P RecordPtr[T]](items []T, id string) (T, bool) {
	for i := range items {
		if P(&items[i]).Meta().ID == id {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}

// Append returns a new slice with rec added at the end
func Append[T any](items []T, rec T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, rec)
}

// Replace removes the entry sharing rec's ID and appends rec.
// Collection order is therefore not stable across updates.
func Replace[T any, P RecordPtr[T]](items []T, rec T) []T {
	id := P(&rec).Meta().ID
	next := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).Meta().ID != id {
			next = append(next, items[i])
		}
	}
	return append(next, rec)
}

// SoftDelete flags every record whose ID is in ids as deleted. It returns the
// new collection and the pre-deletion snapshots of the affected records, or
// nil when nothing matched.
func SoftDelete[T any, P RecordPtr[T]](items []T, ids []string, now time.Time) ([]T, []T) {
	return setDeleted[T, P](items, ids, true, now)
}

// Restore clears the deleted flag on every record whose ID is in ids. It
// returns the new collection and the restored records, or nil when nothing
// matched.
func Restore[T any, P RecordPtr[T]](items []T, ids []string, now time.Time) ([]T, []T) {
	next, before := setDeleted[T, P](items, ids, false, now)
	if before == nil {
		return next, nil
	}
	restored := make([]T, 0, len(before))
	for i := range before {
		rec := before[i]
		P(&rec).Meta().IsDeleted = false
		P(&rec).Meta().Touch(now)
		restored = append(restored, rec)
	}
	return next, restored
}

func setDeleted[T any, P RecordPtr[T]](items []T, ids []string, deleted bool, now time.Time) ([]T, []T) {
	wanted := idSet(ids)
	next := make([]T, len(items))
	copy(next, items)

	var snapshots []T
	for i := range next {
		meta := P(&next[i]).Meta()
		if _, ok := wanted[meta.ID]; !ok {
			continue
		}
		snapshots = append(snapshots, next[i])
		meta.IsDeleted = deleted
		meta.Touch(now)
	}
	if snapshots == nil {
		return items, nil
	}
	return next, snapshots
}

// Modify copies items and calls fn on every record whose ID is in ids. fn
// reports whether it changed the record; the changed records are returned,
// or nil when none were.
func Modify[T any, P RecordPtr[T]](items []T, ids []string, fn func(P) bool) ([]T, []T) {
	wanted := idSet(ids)
	next := make([]T, len(items))
	copy(next, items)

	var changed []T
	for i := range next {
		if _, ok := wanted[P(&next[i]).Meta().ID]; !ok {
			continue
		}
		if fn(P(&next[i])) {
			changed = append(changed, next[i])
		}
	}
	if changed == nil {
		return items, nil
	}
	return next, changed
}

// Purge removes every record whose ID is in ids. It returns the new
// collection and the removed records, or nil when nothing matched.
func Purge[T any, P RecordPtr[T]](items []T, ids []string) ([]T, []T) {
	wanted := idSet(ids)
	next := make([]T, 0, len(items))
	var removed []T
	for i := range items {
		if _, ok := wanted[P(&items[i]).Meta().ID]; ok {
			removed = append(removed, items[i])
			continue
		}
		next = append(next, items[i])
	}
	if removed == nil {
		return items, nil
	}
	return next, removed
}

// Active returns the records not flagged as deleted
func Active[T any, P RecordPtr[T]](items []T) []T {
	active := make([]T, 0, len(items))
	for i := range items {
		if !P(&items[i]).Meta().IsDeleted {
			active = append(active, items[i])
		}
	}
	return active
}

// Sorted returns a copy ordered by creation time, then ID
func Sorted[T any, P RecordPtr[T]](items []T) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := P(&sorted[i]).Meta(), P(&sorted[j]).Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
