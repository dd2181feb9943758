package finance

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ============================================
// TaxService
// ============================================

func TestTaxService_Lifecycle(t *testing.T) {
	clock := sharedtest.NewFakeClock(testStart)
	svc := NewTaxService(clock, sharedtest.NewSequenceIDGenerator("tax"))
	st := state.Default()

	tax, d := svc.Add(st, AddTaxInput{Name: "VAT", Percent: dec("19")})
	require.NotNil(t, tax)
	assert.False(t, tax.CompoundTax)
	st = st.Apply(d)

	clock.Advance(time.Minute)
	compound := true
	updated, d := svc.Update(st, UpdateTaxInput{ID: tax.ID, CompoundTax: &compound, Percent: decPtr("7")})
	require.NotNil(t, updated)
	assert.True(t, updated.CompoundTax)
	assert.True(t, updated.Percent.Equal(dec("7")))
	assert.Equal(t, "VAT", updated.Name)
	st = st.Apply(d)

	removed, d := svc.Remove(st, []string{tax.ID})
	require.Len(t, removed, 1)
	st = st.Apply(d)
	assert.Empty(t, svc.List(st, false))

	restored, d := svc.UndoRemove(st, []string{tax.ID, "unknown"})
	require.Len(t, restored, 1)
	st = st.Apply(d)
	assert.Len(t, svc.List(st, false), 1)
	assert.Equal(t, tax.ID, svc.Get(st, tax.ID).ID)
}

func TestTaxService_UpdateMissing(t *testing.T) {
	svc := NewTaxService(sharedtest.NewFakeClock(testStart), sharedtest.NewSequenceIDGenerator("tax"))
	st := state.Default()

	tax, d := svc.Update(st, UpdateTaxInput{ID: "nonexistent", Percent: decPtr("1")})

	assert.Nil(t, tax)
	assert.True(t, d.IsEmpty())
	assert.Nil(t, svc.Get(st, "nonexistent"))
}

// ============================================
// ExpenseService
// ============================================

func TestExpenseService_AddDefaultsDate(t *testing.T) {
	clock := sharedtest.NewFakeClock(testStart)
	svc := NewExpenseService(clock, sharedtest.NewSequenceIDGenerator("exp"))

	e, d := svc.Add(state.Default(), AddExpenseInput{Amount: dec("42.10"), ExpenseCategoryID: "travel"})

	require.NotNil(t, e)
	assert.Equal(t, testStart, e.ExpenseDate)
	assert.Empty(t, e.CustomerID)
	assert.Len(t, d.Expenses, 1)
}

func TestExpenseService_UpdateRemoveTotal(t *testing.T) {
	clock := sharedtest.NewFakeClock(testStart)
	svc := NewExpenseService(clock, sharedtest.NewSequenceIDGenerator("exp"))
	st := state.Default()
	a, d := svc.Add(st, AddExpenseInput{Amount: dec("10"), ExpenseCategoryID: "office"})
	st = st.Apply(d)
	b, d := svc.Add(st, AddExpenseInput{Amount: dec("5.5"), ExpenseCategoryID: "office"})
	st = st.Apply(d)

	notes := "printer paper"
	updated, d := svc.Update(st, UpdateExpenseInput{ID: a.ID, Notes: &notes})
	require.NotNil(t, updated)
	assert.Equal(t, notes, updated.Notes)
	assert.True(t, updated.Amount.Equal(dec("10")))
	st = st.Apply(d)

	assert.True(t, svc.Total(st).Equal(dec("15.5")))

	_, d = svc.Remove(st, []string{b.ID})
	st = st.Apply(d)
	assert.True(t, svc.Total(st).Equal(dec("10")))

	missing, d := svc.UndoRemove(st, []string{"ghost"})
	assert.Nil(t, missing)
	assert.True(t, d.IsEmpty())
}

// ============================================
// PaymentService
// ============================================

func TestPaymentService_Numbering(t *testing.T) {
	svc := NewPaymentService(sharedtest.NewFakeClock(testStart), sharedtest.NewSequenceIDGenerator("pay"))
	st := state.Default()

	first, d := svc.Add(st, AddPaymentInput{CustomerID: "c1", Amount: dec("100")})
	st = st.Apply(d)
	second, d := svc.Add(st, AddPaymentInput{CustomerID: "c1", Amount: dec("50")})
	st = st.Apply(d)

	assert.Equal(t, "PAY-1001", first.PaymentNumber)
	assert.Equal(t, "PAY-1002", second.PaymentNumber)
	assert.Equal(t, testStart, first.PaymentDate)

	st.Settings.PaymentPrefix = "RCPT"
	third, _ := svc.Add(st, AddPaymentInput{CustomerID: "c1"})
	assert.Equal(t, "RCPT-1003", third.PaymentNumber)
}

func TestPaymentService_UpdateAndDelete(t *testing.T) {
	svc := NewPaymentService(sharedtest.NewFakeClock(testStart), sharedtest.NewSequenceIDGenerator("pay"))
	st := state.Default()
	p, d := svc.Add(st, AddPaymentInput{CustomerID: "c1", InvoiceID: "inv-1", Amount: dec("100")})
	st = st.Apply(d)
	q, d := svc.Add(st, AddPaymentInput{CustomerID: "c1", InvoiceID: "inv-1", Amount: dec("20")})
	st = st.Apply(d)

	assert.True(t, svc.PaidFor(st, "inv-1").Equal(dec("120")))

	updated, d := svc.Update(st, UpdatePaymentInput{ID: q.ID, Amount: decPtr("30")})
	require.NotNil(t, updated)
	assert.Equal(t, q.PaymentNumber, updated.PaymentNumber)
	st = st.Apply(d)
	assert.True(t, svc.PaidFor(st, "inv-1").Equal(dec("130")))

	deleted, d := svc.Delete(st, []string{p.ID, "ghost"})
	require.Len(t, deleted, 1)
	assert.Equal(t, p.ID, deleted[0].ID)
	st = st.Apply(d)
	assert.Len(t, svc.List(st), 1)
	assert.Nil(t, svc.Get(st, p.ID))

	none, d := svc.Delete(st, []string{"ghost"})
	assert.Nil(t, none)
	assert.True(t, d.IsEmpty())
}
