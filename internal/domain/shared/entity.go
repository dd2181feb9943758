package shared

import (
	"time"
)

// Record holds the fields every stored entity carries
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsDeleted bool      `json:"isDeleted"`
}

// Meta returns the record itself; it lets generic collections reach the
// embedded record of any entity through a pointer
func (r *Record) Meta() *Record {
	return r
}

// GetID returns the record ID
func (r Record) GetID() string {
	return r.ID
}

// Touch refreshes the update timestamp
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// NewRecord creates a live record with a fresh ID
func NewRecord(ids IDGenerator, clock Clock) Record {
	now := clock.Now()
	return Record{
		ID:        ids.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
		IsDeleted: false,
	}
}
