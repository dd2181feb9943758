package trade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := newTestDocument()

	assert.Equal(t, "INV-1001", doc.Number)
	assert.Equal(t, testNow, doc.Date)
	assert.Equal(t, DiscountPerItemNo, doc.DiscountPerItem)
	assert.True(t, doc.SubTotal.IsZero())
	assert.True(t, doc.DiscountAmount.IsZero())
	assert.True(t, doc.TaxAmount.IsZero())
	assert.True(t, doc.Total.IsZero())
	assert.NotNil(t, doc.LineItems)
	assert.Empty(t, doc.LineItems)
}

func TestDocument_Clone(t *testing.T) {
	doc := newTestDocument()
	doc.AddLine(LineItem{ID: "a", LineTaxes: []LineTax{{TaxID: "t"}}})

	clone := doc.Clone()
	clone.LineItems[0].Description = "changed"
	clone.LineItems[0].LineTaxes[0].Name = "changed"

	assert.Empty(t, doc.LineItems[0].Description)
	assert.Empty(t, doc.LineItems[0].LineTaxes[0].Name)
}

func TestDocument_RemoveLine(t *testing.T) {
	doc := newTestDocument()
	doc.AddLine(LineItem{ID: "a"})
	doc.AddLine(LineItem{ID: "b"})
	doc.AddLine(LineItem{ID: "c"})
	original := doc.Clone()
	snapshot := doc

	require.True(t, doc.RemoveLine("b"))
	assert.False(t, doc.RemoveLine("missing"))

	assert.Len(t, doc.LineItems, 2)
	_, ok := doc.FindLine("b")
	assert.False(t, ok)
	assert.Equal(t, original.LineItems, snapshot.LineItems, "removing must not rewrite a shared backing array")
}

func TestEstimateStatus(t *testing.T) {
	tests := []struct {
		status  EstimateStatus
		isValid bool
	}{
		{EstimateStatusDraft, true},
		{EstimateStatusSent, true},
		{EstimateStatusAccepted, true},
		{EstimateStatusRejected, true},
		{EstimateStatus("COMPLETED"), false},
		{EstimateStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestEstimate_SetStatusIsUnguarded(t *testing.T) {
	est := NewEstimate(newTestDocument())
	assert.Equal(t, EstimateStatusDraft, est.Status)

	later := testNow.Add(time.Hour)
	est.SetStatus(EstimateStatusRejected, later)
	est.SetStatus(EstimateStatusAccepted, later)

	assert.Equal(t, EstimateStatusAccepted, est.Status)
	assert.Equal(t, later, est.UpdatedAt)
}

func TestInvoice_Lifecycle(t *testing.T) {
	inv := NewInvoice(newTestDocument())
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, PaidStatusUnpaid, inv.PaidStatus)
	assert.Nil(t, inv.Sent)

	sentAt := testNow.Add(time.Minute)
	inv.MarkSent(sentAt)
	require.NotNil(t, inv.Sent)
	assert.Equal(t, sentAt, *inv.Sent)
	assert.Equal(t, InvoiceStatusSent, inv.Status)

	inv.SetPaidStatus(PaidStatusPaid, sentAt)
	inv.MarkCompleted(sentAt)
	assert.Equal(t, PaidStatusPaid, inv.PaidStatus)
	assert.Equal(t, InvoiceStatusCompleted, inv.Status)

	clone := inv.Clone()
	*clone.Sent = testNow
	assert.Equal(t, sentAt, *inv.Sent)
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, InvoiceStatusCompleted.IsValid())
	assert.False(t, InvoiceStatus("ACCEPTED").IsValid())
	assert.True(t, PaidStatusPaid.IsValid())
	assert.False(t, PaidStatus("PARTIAL").IsValid())
	assert.True(t, DiscountFixed.IsValid())
	assert.False(t, DiscountType("").IsValid())
}
