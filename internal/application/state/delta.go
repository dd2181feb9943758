package state

import (
	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/partner"
	"github.com/erp/invoicing/internal/domain/setting"
	"github.com/erp/invoicing/internal/domain/trade"
)

// Delta names the sub-collections an operation replaced. A nil field means
// unchanged; the zero Delta is a no-op.
type Delta struct {
	Customers []partner.Customer
	Items     []catalog.Item
	Taxes     []finance.Tax
	Expenses  []finance.Expense
	Payments  []finance.Payment
	Estimates []trade.Estimate
	Invoices  []trade.Invoice
	Settings  *setting.Settings
}

// IsEmpty reports whether the delta changes nothing
func (d Delta) IsEmpty() bool {
	return len(d.Changed()) == 0
}

// Changed lists the state keys the delta replaces
func (d Delta) Changed() []string {
	var keys []string
	if d.Customers != nil {
		keys = append(keys, "customers")
	}
	if d.Items != nil {
		keys = append(keys, "items")
	}
	if d.Taxes != nil {
		keys = append(keys, "taxes")
	}
	if d.Expenses != nil {
		keys = append(keys, "expenses")
	}
	if d.Payments != nil {
		keys = append(keys, "payments")
	}
	if d.Estimates != nil {
		keys = append(keys, "estimates")
	}
	if d.Invoices != nil {
		keys = append(keys, "invoices")
	}
	if d.Settings != nil {
		keys = append(keys, "settings")
	}
	return keys
}
