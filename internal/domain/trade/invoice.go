package trade

import (
	"time"
)

// InvoiceStatus represents the delivery status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusCompleted InvoiceStatus = "COMPLETED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// PaidStatus tracks settlement independently of InvoiceStatus
type PaidStatus string

const (
	PaidStatusUnpaid PaidStatus = "UNPAID"
	PaidStatusPaid   PaidStatus = "PAID"
)

// IsValid checks if the paid status is known
func (s PaidStatus) IsValid() bool {
	return s == PaidStatusUnpaid || s == PaidStatusPaid
}

// Invoice is a bill issued to a customer
type Invoice struct {
	Document
	DueDate    time.Time     `json:"dueDate"`
	Status     InvoiceStatus `json:"status"`
	PaidStatus PaidStatus    `json:"paidStatus"`
	Sent       *time.Time    `json:"sent,omitempty"`
}

// NewInvoice wraps a fresh document as a draft, unpaid invoice
func NewInvoice(doc Document) Invoice {
	return Invoice{
		Document:   doc,
		DueDate:    doc.Date,
		Status:     InvoiceStatusDraft,
		PaidStatus: PaidStatusUnpaid,
	}
}

// Clone returns a deep copy of the invoice
func (i Invoice) Clone() Invoice {
	i.Document = i.Document.Clone()
	if i.Sent != nil {
		sent := *i.Sent
		i.Sent = &sent
	}
	return i
}

// MarkSent moves the invoice to SENT and stamps the send time
func (i *Invoice) MarkSent(now time.Time) {
	i.Status = InvoiceStatusSent
	sent := now
	i.Sent = &sent
	i.Touch(now)
}

// MarkCompleted moves the invoice to COMPLETED
func (i *Invoice) MarkCompleted(now time.Time) {
	i.Status = InvoiceStatusCompleted
	i.Touch(now)
}

// SetPaidStatus overwrites the settlement flag
func (i *Invoice) SetPaidStatus(status PaidStatus, now time.Time) {
	i.PaidStatus = status
	i.Touch(now)
}
