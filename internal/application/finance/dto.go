package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Tax DTOs
// =============================================================================

// AddTaxInput represents a request to add a tax
type AddTaxInput struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	Percent       decimal.Decimal `json:"percent"`
	CompoundTax   bool            `json:"compoundTax"`
	CollectiveTax bool            `json:"collectiveTax"`
	Description   string          `json:"description"`
}

// UpdateTaxInput represents a partial tax update
type UpdateTaxInput struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Percent       *decimal.Decimal `json:"percent"`
	CompoundTax   *bool            `json:"compoundTax"`
	CollectiveTax *bool            `json:"collectiveTax"`
	Description   *string          `json:"description"`
}

// =============================================================================
// Expense DTOs
// =============================================================================

// AddExpenseInput represents a request to record an expense. A zero
// ExpenseDate defaults to now.
type AddExpenseInput struct {
	Amount            decimal.Decimal `json:"amount"`
	ExpenseCategoryID string          `json:"expenseCategoryId" binding:"required"`
	ExpenseDate       time.Time       `json:"expenseDate"`
	CustomerID        string          `json:"customerId"`
	Notes             string          `json:"notes"`
	AttachmentReceipt string          `json:"attachmentReceipt"`
}

// UpdateExpenseInput represents a partial expense update
type UpdateExpenseInput struct {
	ID                string           `json:"-"`
	Amount            *decimal.Decimal `json:"amount"`
	ExpenseCategoryID *string          `json:"expenseCategoryId" binding:"omitempty,min=1"`
	ExpenseDate       *time.Time       `json:"expenseDate"`
	CustomerID        *string          `json:"customerId"`
	Notes             *string          `json:"notes"`
	AttachmentReceipt *string          `json:"attachmentReceipt"`
}

// =============================================================================
// Payment DTOs
// =============================================================================

// AddPaymentInput represents a request to record a payment. A zero
// PaymentDate defaults to now.
type AddPaymentInput struct {
	CustomerID  string          `json:"customerId" binding:"required"`
	InvoiceID   string          `json:"invoiceId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	PaymentMode string          `json:"paymentMode" binding:"max=50"`
	Notes       string          `json:"notes"`
}

// UpdatePaymentInput represents a partial payment update. The payment
// number is never rewritten.
type UpdatePaymentInput struct {
	ID          string           `json:"-"`
	CustomerID  *string          `json:"customerId" binding:"omitempty,min=1"`
	InvoiceID   *string          `json:"invoiceId"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate *time.Time       `json:"paymentDate"`
	PaymentMode *string          `json:"paymentMode" binding:"omitempty,max=50"`
	Notes       *string          `json:"notes"`
}
