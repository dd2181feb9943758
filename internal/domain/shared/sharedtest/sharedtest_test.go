package sharedtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)

	assert.Equal(t, start, clock.Now())
	clock.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), clock.Now())
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator("id")

	assert.Equal(t, "id-1", gen.NewID())
	assert.Equal(t, "id-2", gen.NewID())
}
