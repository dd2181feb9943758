package finance

import (
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tax is a named percentage rate applicable to documents or line items
type Tax struct {
	shared.Record
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
	// CompoundTax applies the rate on top of an already taxed subtotal
	CompoundTax   bool   `json:"compoundTax"`
	CollectiveTax bool   `json:"collectiveTax"`
	Description   string `json:"description"`
}
