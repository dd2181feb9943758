package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_HasTax(t *testing.T) {
	item := Item{Name: "Widget", Taxes: []string{"vat", "eco"}}

	assert.True(t, item.HasTax("vat"))
	assert.False(t, item.HasTax("gst"))
	assert.False(t, Item{}.HasTax("vat"))
}
