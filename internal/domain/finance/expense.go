package finance

import (
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is money spent, optionally attributed to a customer
type Expense struct {
	shared.Record
	Amount            decimal.Decimal `json:"amount"`
	ExpenseCategoryID string          `json:"expenseCategoryId"`
	ExpenseDate       time.Time       `json:"expenseDate"`
	CustomerID        string          `json:"customerId"`
	Notes             string          `json:"notes"`
	AttachmentReceipt string          `json:"attachmentReceipt"`
}
