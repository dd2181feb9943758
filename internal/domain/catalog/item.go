package catalog

import (
	"slices"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item is a sellable product or service
type Item struct {
	shared.Record
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	// Taxes lists the tax IDs applied to the item when per-item taxation is on
	Taxes []string `json:"taxes"`
}

// HasTax reports whether the tax ID applies to the item
func (i Item) HasTax(taxID string) bool {
	return slices.Contains(i.Taxes, taxID)
}
