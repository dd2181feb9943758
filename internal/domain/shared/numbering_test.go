package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceNumber(t *testing.T) {
	tests := []struct {
		prefix string
		count  int
		want   string
	}{
		{"INV", 0, "INV-1001"},
		{"EST", 9, "EST-1010"},
		{"", 1, "-1002"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceNumber(tt.prefix, tt.count))
		})
	}
}
