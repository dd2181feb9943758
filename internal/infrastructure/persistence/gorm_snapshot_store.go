package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotStore keeps snapshots in the state_snapshots table
type GormSnapshotStore struct {
	db  *Database
	now func() time.Time
}

// NewGormSnapshotStore creates a snapshot store over an open database
func NewGormSnapshotStore(db *Database) *GormSnapshotStore {
	return &GormSnapshotStore{db: db, now: time.Now}
}

// AutoMigrate creates the snapshot table when it is missing
func (s *GormSnapshotStore) AutoMigrate() error {
	if err := s.db.DB.AutoMigrate(&models.SnapshotModel{}); err != nil {
		return fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under key
func (s *GormSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var model models.SnapshotModel
	err := s.db.DB.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return model.Data, nil
}

// Save upserts the snapshot stored under key
func (s *GormSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	model := models.SnapshotModel{Key: key, Data: data, UpdatedAt: s.now().UTC()}
	err := s.db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Ping checks the database connection
func (s *GormSnapshotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the underlying database
func (s *GormSnapshotStore) Close() error {
	return s.db.Close()
}
