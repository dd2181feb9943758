package trade

import (
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountPerItem is informational only; discounts are always applied at
// document level by the Calculator
type DiscountPerItem string

const (
	DiscountPerItemNo  DiscountPerItem = "no"
	DiscountPerItemYes DiscountPerItem = "yes"
)

// Document is the shape shared by estimates and invoices
type Document struct {
	shared.Record
	CustomerID      string          `json:"customerId"`
	Date            time.Time       `json:"date"`
	Number          string          `json:"number"`
	Reference       string          `json:"reference"`
	Notes           string          `json:"notes"`
	DiscountType    DiscountType    `json:"discountType"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	DiscountPerItem DiscountPerItem `json:"discountPerItem"`
	LineItems       []LineItem      `json:"lineItems"`
	LineTaxes       []LineTax       `json:"lineTaxes"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	Total           decimal.Decimal `json:"total"`
}

// NewDocument creates an empty document with every derived amount at zero
func NewDocument(rec shared.Record, number string) Document {
	return Document{
		Record:          rec,
		Date:            rec.CreatedAt,
		Number:          number,
		DiscountType:    DiscountFixed,
		DiscountValue:   decimal.Zero,
		DiscountPerItem: DiscountPerItemNo,
		LineItems:       []LineItem{},
		LineTaxes:       []LineTax{},
		SubTotal:        decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TaxAmount:       decimal.Zero,
		Total:           decimal.Zero,
	}
}

// Clone returns a deep copy so that edits never leak into a shared snapshot
func (d Document) Clone() Document {
	if d.LineItems != nil {
		items := make([]LineItem, len(d.LineItems))
		for i, li := range d.LineItems {
			items[i] = li.Clone()
		}
		d.LineItems = items
	}
	d.LineTaxes = cloneTaxes(d.LineTaxes)
	return d
}

// AddLine appends a line item
func (d *Document) AddLine(li LineItem) {
	d.LineItems = append(d.LineItems, li)
}

// RemoveLine drops the line item with the given ID and reports whether it existed
func (d *Document) RemoveLine(lineID string) bool {
	for i, li := range d.LineItems {
		if li.ID == lineID {
			d.LineItems = append(d.LineItems[:i:i], d.LineItems[i+1:]...)
			return true
		}
	}
	return false
}

// FindLine returns the line item with the given ID
func (d Document) FindLine(lineID string) (LineItem, bool) {
	for _, li := range d.LineItems {
		if li.ID == lineID {
			return li, true
		}
	}
	return LineItem{}, false
}
