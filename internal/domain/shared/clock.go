package shared

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator produces opaque unique identifiers
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (v4) UUID strings
type UUIDGenerator struct{}

// NewID returns a new UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
