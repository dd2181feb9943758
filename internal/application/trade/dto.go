package trade

import (
	"time"

	"github.com/erp/invoicing/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Line item DTOs
// =============================================================================

// LineItemInput holds the raw fields of a new line item. Price, Unit and
// Description fall back to the referenced item when omitted. When LineTaxes
// is nil and per-item taxation is on, the item's own taxes are used.
type LineItemInput struct {
	ItemID        string             `json:"itemId" binding:"required"`
	Description   *string            `json:"description"`
	Unit          *string            `json:"unit"`
	Quantity      decimal.Decimal    `json:"quantity"`
	Price         *decimal.Decimal   `json:"price"`
	DiscountType  trade.DiscountType `json:"discountType" binding:"omitempty,oneof=fixed percentage"`
	DiscountValue decimal.Decimal    `json:"discountValue"`
	LineTaxes     []trade.LineTax    `json:"lineTaxes"`
}

// UpdateLineItemInput is a partial line item update; the line is priced
// again from the merged fields
type UpdateLineItemInput struct {
	Description   *string             `json:"description"`
	Unit          *string             `json:"unit"`
	Quantity      *decimal.Decimal    `json:"quantity"`
	Price         *decimal.Decimal    `json:"price"`
	DiscountType  *trade.DiscountType `json:"discountType" binding:"omitempty,oneof=fixed percentage"`
	DiscountValue *decimal.Decimal    `json:"discountValue"`
	LineTaxes     []trade.LineTax     `json:"lineTaxes"`
}

// =============================================================================
// Document DTOs
// =============================================================================

// DocumentInput holds the fields shared by new estimates and invoices. A nil
// Date defaults to now and an empty DiscountType to fixed.
type DocumentInput struct {
	CustomerID    string             `json:"customerId" binding:"required"`
	Date          *time.Time         `json:"date"`
	Reference     string             `json:"reference" binding:"max=100"`
	Notes         string             `json:"notes"`
	DiscountType  trade.DiscountType `json:"discountType" binding:"omitempty,oneof=fixed percentage"`
	DiscountValue decimal.Decimal    `json:"discountValue"`
	LineItems     []LineItemInput    `json:"lineItems" binding:"dive"`
}

// DocumentPatch holds the optional overrides shared by estimate and invoice
// updates. Derived amounts are never accepted from the caller.
type DocumentPatch struct {
	CustomerID    *string             `json:"customerId" binding:"omitempty,min=1"`
	Date          *time.Time          `json:"date"`
	Reference     *string             `json:"reference" binding:"omitempty,max=100"`
	Notes         *string             `json:"notes"`
	DiscountType  *trade.DiscountType `json:"discountType" binding:"omitempty,oneof=fixed percentage"`
	DiscountValue *decimal.Decimal    `json:"discountValue"`
}

// CreateEstimateInput represents a request to create a draft estimate. A nil
// ExpiryDate defaults to the document date.
type CreateEstimateInput struct {
	DocumentInput
	ExpiryDate *time.Time `json:"expiryDate"`
}

// UpdateEstimateInput represents a partial estimate update
type UpdateEstimateInput struct {
	ID string `json:"-"`
	DocumentPatch
	ExpiryDate *time.Time            `json:"expiryDate"`
	Status     *trade.EstimateStatus `json:"status" binding:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED"`
}

// CreateInvoiceInput represents a request to create a draft invoice. A nil
// DueDate defaults to the document date.
type CreateInvoiceInput struct {
	DocumentInput
	DueDate *time.Time `json:"dueDate"`
}

// UpdateInvoiceInput represents a partial invoice update
type UpdateInvoiceInput struct {
	ID string `json:"-"`
	DocumentPatch
	DueDate    *time.Time           `json:"dueDate"`
	Status     *trade.InvoiceStatus `json:"status" binding:"omitempty,oneof=DRAFT SENT COMPLETED"`
	PaidStatus *trade.PaidStatus    `json:"paidStatus" binding:"omitempty,oneof=UNPAID PAID"`
}

// FromEstimateInput overrides the dates of an invoice converted from an
// estimate
type FromEstimateInput struct {
	Date    *time.Time `json:"date"`
	DueDate *time.Time `json:"dueDate"`
}

// InvoiceBalance is the settlement position of one invoice
type InvoiceBalance struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}
