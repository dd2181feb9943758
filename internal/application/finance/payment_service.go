package finance

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentService handles payment-related business operations. Unlike the
// other entities payments are hard-deleted.
type PaymentService struct {
	clock shared.Clock
	ids   shared.IDGenerator
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(clock shared.Clock, ids shared.IDGenerator) *PaymentService {
	return &PaymentService{
		clock: clock,
		ids:   ids,
	}
}

func paymentDefaults(rec shared.Record, number string, in AddPaymentInput) finance.Payment {
	date := in.PaymentDate
	if date.IsZero() {
		date = rec.CreatedAt
	}
	return finance.Payment{
		Record:        rec,
		CustomerID:    in.CustomerID,
		InvoiceID:     in.InvoiceID,
		Amount:        in.Amount,
		PaymentNumber: number,
		PaymentDate:   date,
		PaymentMode:   in.PaymentMode,
		Notes:         in.Notes,
	}
}

// List returns the payments ordered by creation time
func (s *PaymentService) List(st state.State) []finance.Payment {
	return shared.Sorted(st.Payments)
}

// Get returns a payment by ID, or nil
func (s *PaymentService) Get(st state.State, id string) *finance.Payment {
	p, ok := shared.Find(st.Payments, id)
	if !ok {
		return nil
	}
	return &p
}

// PaidFor sums the payments recorded against an invoice
func (s *PaymentService) PaidFor(st state.State, invoiceID string) decimal.Decimal {
	return finance.TotalPaid(st.Payments, invoiceID)
}

// Add records a new payment numbered after the current payment count
func (s *PaymentService) Add(st state.State, in AddPaymentInput) (*finance.Payment, state.Delta) {
	number := shared.SequenceNumber(st.Settings.PaymentPrefix, len(st.Payments))
	p := paymentDefaults(shared.NewRecord(s.ids, s.clock), number, in)
	return &p, state.Delta{Payments: shared.Append(st.Payments, p)}
}

// Update overwrites the fields present in the input
func (s *PaymentService) Update(st state.State, in UpdatePaymentInput) (*finance.Payment, state.Delta) {
	p, ok := shared.Find(st.Payments, in.ID)
	if !ok {
		return nil, state.Delta{}
	}

	if in.CustomerID != nil {
		p.CustomerID = *in.CustomerID
	}
	if in.InvoiceID != nil {
		p.InvoiceID = *in.InvoiceID
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}
	if in.PaymentMode != nil {
		p.PaymentMode = *in.PaymentMode
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.Touch(s.clock.Now())

	return &p, state.Delta{Payments: shared.Replace(st.Payments, p)}
}

// Delete removes the matching payments for good and returns them, or nil
// when nothing matched
func (s *PaymentService) Delete(st state.State, ids []string) ([]finance.Payment, state.Delta) {
	next, removed := shared.Purge(st.Payments, ids)
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Payments: next}
}
