package trade

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testStart = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock     *sharedtest.FakeClock
	ids       *sharedtest.SequenceIDGenerator
	estimates *EstimateService
	invoices  *InvoiceService
}

func newFixture() *fixture {
	clock := sharedtest.NewFakeClock(testStart)
	ids := sharedtest.NewSequenceIDGenerator("id")
	return &fixture{
		clock:     clock,
		ids:       ids,
		estimates: NewEstimateService(nil, clock, ids),
		invoices:  NewInvoiceService(nil, clock, ids),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func withItem(st state.State, id, price string, taxes ...string) state.State {
	st.Items = shared.Append(st.Items, catalog.Item{
		Record:      shared.Record{ID: id, CreatedAt: testStart},
		Name:        "Item " + id,
		Price:       dec(price),
		Unit:        "pcs",
		Description: "catalog description",
		Taxes:       taxes,
	})
	return st
}

func withTax(st state.State, id, percent string) state.State {
	st.Taxes = shared.Append(st.Taxes, finance.Tax{
		Record:  shared.Record{ID: id, CreatedAt: testStart},
		Name:    "Tax " + id,
		Percent: dec(percent),
	})
	return st
}
