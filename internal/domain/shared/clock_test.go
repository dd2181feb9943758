package shared

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNewRecord(t *testing.T) {
	clock := sharedtest.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	rec := NewRecord(UUIDGenerator{}, clock)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, clock.Now(), rec.CreatedAt)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.False(t, rec.IsDeleted)
	assert.Same(t, &rec, rec.Meta())
}
