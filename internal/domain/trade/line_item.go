package trade

import (
	"github.com/shopspring/decimal"
)

// DiscountType selects how a discount value is interpreted
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountFixed || t == DiscountPercentage
}

// LineTax is one entry of a tax breakdown, on a line item or a whole document
type LineTax struct {
	TaxID       string          `json:"taxId"`
	Name        string          `json:"name"`
	Percent     decimal.Decimal `json:"percent"`
	CompoundTax bool            `json:"compoundTax"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItem is a single row of an estimate or invoice. It only exists inside
// its document.
type LineItem struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"itemId"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	DiscountType   DiscountType    `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	LineTaxes      []LineTax       `json:"lineTaxes"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Amount         decimal.Decimal `json:"amount"`
	Total          decimal.Decimal `json:"total"`
}

// Clone returns a copy that shares no slices with the receiver
func (li LineItem) Clone() LineItem {
	li.LineTaxes = cloneTaxes(li.LineTaxes)
	return li
}

func cloneTaxes(taxes []LineTax) []LineTax {
	if taxes == nil {
		return nil
	}
	out := make([]LineTax, len(taxes))
	copy(out, taxes)
	return out
}
