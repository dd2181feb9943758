package trade

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/trade"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	documentEngine
}

// NewInvoiceService creates a new InvoiceService. A nil calculator uses the
// default calculation rules.
func NewInvoiceService(calc *trade.Calculator, clock shared.Clock, ids shared.IDGenerator) *InvoiceService {
	return &InvoiceService{documentEngine: newDocumentEngine(calc, clock, ids)}
}

// List returns the invoices ordered by creation time
func (s *InvoiceService) List(st state.State, includeDeleted bool) []trade.Invoice {
	if includeDeleted {
		return shared.Sorted(st.Invoices)
	}
	return shared.Sorted(shared.Active(st.Invoices))
}

// Get returns an invoice by ID, or nil
func (s *InvoiceService) Get(st state.State, id string) *trade.Invoice {
	inv, ok := shared.Find(st.Invoices, id)
	if !ok {
		return nil
	}
	return &inv
}

// Balance reports how much of the invoice total is covered by payments
func (s *InvoiceService) Balance(st state.State, id string) *InvoiceBalance {
	inv, ok := shared.Find(st.Invoices, id)
	if !ok {
		return nil
	}
	paid := finance.TotalPaid(st.Payments, id)
	return &InvoiceBalance{
		Total: inv.Total,
		Paid:  paid,
		Due:   inv.Total.Sub(paid),
	}
}

// Create materializes a draft, unpaid invoice numbered after the current count
func (s *InvoiceService) Create(st state.State, in CreateInvoiceInput) (*trade.Invoice, state.Delta) {
	number := shared.SequenceNumber(st.Settings.InvoicePrefix, len(st.Invoices))
	inv := trade.NewInvoice(s.newDocument(st, number, in.DocumentInput))
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	return &inv, state.Delta{Invoices: shared.Append(st.Invoices, inv)}
}

// CreateFromEstimate copies the customer, discount and lines of an estimate
// into a new draft invoice. It returns nil when the estimate does not exist
// or was removed. The estimate itself is left unchanged.
func (s *InvoiceService) CreateFromEstimate(st state.State, estimateID string, in FromEstimateInput) (*trade.Invoice, state.Delta) {
	est, ok := shared.Find(st.Estimates, estimateID)
	if !ok || est.IsDeleted {
		return nil, state.Delta{}
	}

	number := shared.SequenceNumber(st.Settings.InvoicePrefix, len(st.Invoices))
	doc := trade.NewDocument(shared.NewRecord(s.ids, s.clock), number)
	doc.CustomerID = est.CustomerID
	doc.Reference = est.Number
	doc.Notes = est.Notes
	doc.DiscountType = est.DiscountType
	doc.DiscountValue = est.DiscountValue
	doc.DiscountPerItem = est.DiscountPerItem
	if in.Date != nil {
		doc.Date = *in.Date
	}
	for _, li := range est.LineItems {
		line := li.Clone()
		line.ID = s.ids.NewID()
		doc.AddLine(line)
	}
	s.recalculate(st, &doc)

	inv := trade.NewInvoice(doc)
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	return &inv, state.Delta{Invoices: shared.Append(st.Invoices, inv)}
}

// Update applies the present fields and recalculates every derived amount
func (s *InvoiceService) Update(st state.State, in UpdateInvoiceInput) (*trade.Invoice, state.Delta) {
	return s.edit(st, in.ID, func(inv *trade.Invoice) bool {
		applyPatch(&inv.Document, in.DocumentPatch)
		if in.DueDate != nil {
			inv.DueDate = *in.DueDate
		}
		if in.Status != nil {
			inv.Status = *in.Status
		}
		if in.PaidStatus != nil {
			inv.PaidStatus = *in.PaidStatus
		}
		return true
	})
}

// AddLineItem prices a new line, appends it and recalculates the invoice
func (s *InvoiceService) AddLineItem(st state.State, invoiceID string, in LineItemInput) (*trade.Invoice, state.Delta) {
	return s.edit(st, invoiceID, func(inv *trade.Invoice) bool {
		s.addLine(st, &inv.Document, in)
		return true
	})
}

// UpdateLineItem edits one line and recalculates the invoice
func (s *InvoiceService) UpdateLineItem(st state.State, invoiceID, lineID string, in UpdateLineItemInput) (*trade.Invoice, state.Delta) {
	return s.edit(st, invoiceID, func(inv *trade.Invoice) bool {
		return s.updateLine(&inv.Document, lineID, in)
	})
}

// RemoveLineItem drops one line and recalculates the invoice
func (s *InvoiceService) RemoveLineItem(st state.State, invoiceID, lineID string) (*trade.Invoice, state.Delta) {
	return s.edit(st, invoiceID, func(inv *trade.Invoice) bool {
		return inv.RemoveLine(lineID)
	})
}

func (s *InvoiceService) edit(st state.State, id string, fn func(*trade.Invoice) bool) (*trade.Invoice, state.Delta) {
	found, ok := shared.Find(st.Invoices, id)
	if !ok {
		return nil, state.Delta{}
	}
	inv := found.Clone()
	if !fn(&inv) {
		return nil, state.Delta{}
	}
	s.recalculate(st, &inv.Document)
	return &inv, state.Delta{Invoices: shared.Replace(st.Invoices, inv)}
}

// Remove soft-deletes the matching invoices
func (s *InvoiceService) Remove(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	next, removed := shared.SoftDelete(st.Invoices, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Invoices: next}
}

// UndoRemove restores soft-deleted invoices
func (s *InvoiceService) UndoRemove(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	next, restored := shared.Restore(st.Invoices, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Invoices: next}
}

// MarkSent moves the matching, not removed invoices to SENT and stamps the
// send time. It returns nil when nothing matched.
func (s *InvoiceService) MarkSent(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	now := s.clock.Now()
	next, changed := shared.Modify(st.Invoices, ids, func(inv *trade.Invoice) bool {
		if inv.IsDeleted {
			return false
		}
		inv.MarkSent(now)
		return true
	})
	if changed == nil {
		return nil, state.Delta{}
	}
	return changed, state.Delta{Invoices: next}
}

// MarkCompleted moves the matching invoices to COMPLETED
func (s *InvoiceService) MarkCompleted(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	now := s.clock.Now()
	return s.mark(st, ids, func(inv *trade.Invoice) {
		inv.MarkCompleted(now)
	})
}

// MarkPaid flags the matching invoices as PAID
func (s *InvoiceService) MarkPaid(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	now := s.clock.Now()
	return s.mark(st, ids, func(inv *trade.Invoice) {
		inv.SetPaidStatus(trade.PaidStatusPaid, now)
	})
}

// MarkUnpaid flags the matching invoices as UNPAID
func (s *InvoiceService) MarkUnpaid(st state.State, ids []string) ([]trade.Invoice, state.Delta) {
	now := s.clock.Now()
	return s.mark(st, ids, func(inv *trade.Invoice) {
		inv.SetPaidStatus(trade.PaidStatusUnpaid, now)
	})
}

func (s *InvoiceService) mark(st state.State, ids []string, fn func(*trade.Invoice)) ([]trade.Invoice, state.Delta) {
	next, changed := shared.Modify(st.Invoices, ids, func(inv *trade.Invoice) bool {
		fn(inv)
		return true
	})
	if changed == nil {
		return []trade.Invoice{}, state.Delta{}
	}
	return changed, state.Delta{Invoices: next}
}
