// Package models holds the gorm table models of the persistence layer.
package models

import "time"

// SnapshotModel is one row of the state_snapshots table
type SnapshotModel struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SnapshotModel) TableName() string {
	return "state_snapshots"
}
