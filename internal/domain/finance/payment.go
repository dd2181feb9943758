package finance

import (
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment is money received from a customer. Payments are removed for good
// rather than soft-deleted.
type Payment struct {
	shared.Record
	CustomerID    string          `json:"customerId"`
	InvoiceID     string          `json:"invoiceId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentNumber string          `json:"paymentNumber"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMode   string          `json:"paymentMode"`
	Notes         string          `json:"notes"`
}

// AppliesTo reports whether the payment settles the given invoice
func (p Payment) AppliesTo(invoiceID string) bool {
	return invoiceID != "" && p.InvoiceID == invoiceID
}

// TotalPaid sums the payments recorded against an invoice
func TotalPaid(payments []Payment, invoiceID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.AppliesTo(invoiceID) {
			total = total.Add(p.Amount)
		}
	}
	return total
}
