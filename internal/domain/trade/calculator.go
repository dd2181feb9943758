package trade

import (
	"time"

	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator derives line and document amounts. It holds no state besides
// its options and is safe for concurrent use.
type Calculator struct {
	correctedLinePercentage bool
	compoundTaxes           bool
}

// CalculatorOption is a functional option for Calculator
type CalculatorOption func(*Calculator)

// WithCorrectedLinePercentage switches the line-level percentage discount
// from (amount × 100) / value to (value / 100) × amount
func WithCorrectedLinePercentage(enabled bool) CalculatorOption {
	return func(c *Calculator) {
		c.correctedLinePercentage = enabled
	}
}

// WithCompoundTaxes makes taxes flagged as compound apply on the subtotal
// plus every tax computed before them
func WithCompoundTaxes(enabled bool) CalculatorOption {
	return func(c *Calculator) {
		c.compoundTaxes = enabled
	}
}

// NewCalculator creates a Calculator
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LineInput holds the raw fields entered for a new line item
type LineInput struct {
	ItemID        string
	Description   string
	Unit          string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	LineTaxes     []LineTax
}

// CalculateLine builds a line item with its amount, discount, taxes and total
func (c *Calculator) CalculateLine(id string, in LineInput) LineItem {
	amount := in.Quantity.Mul(in.Price)
	discount := c.lineDiscount(amount, in.DiscountType, in.DiscountValue)
	taxes, taxAmount := c.applyTaxes(amount, in.LineTaxes)

	return LineItem{
		ID:             id,
		ItemID:         in.ItemID,
		Description:    in.Description,
		Unit:           in.Unit,
		Quantity:       in.Quantity,
		Price:          in.Price,
		DiscountType:   in.DiscountType,
		DiscountValue:  in.DiscountValue,
		DiscountAmount: discount,
		LineTaxes:      taxes,
		TaxAmount:      taxAmount,
		Amount:         amount,
		Total:          amount.Sub(discount).Add(taxAmount),
	}
}

// lineDiscount keeps the historical inverse-percentage formula unless the
// corrected mode is enabled. A zero percentage yields no discount since
// decimals have no Infinity.
func (c *Calculator) lineDiscount(amount decimal.Decimal, kind DiscountType, value decimal.Decimal) decimal.Decimal {
	switch kind {
	case DiscountFixed:
		return value
	case DiscountPercentage:
		if c.correctedLinePercentage {
			return value.Div(hundred).Mul(amount)
		}
		if value.IsZero() {
			return decimal.Zero
		}
		return amount.Mul(hundred).Div(value)
	}
	return decimal.Zero
}

// Recalculate recomputes every derived field of doc in place. Line discount
// and tax amounts are taken as already computed. When taxPerItem is false the
// active taxes are applied to the subtotal; otherwise the document carries no
// tax breakdown of its own.
func (c *Calculator) Recalculate(doc *Document, taxes []finance.Tax, taxPerItem bool, now time.Time) {
	subTotal := decimal.Zero
	for i := range doc.LineItems {
		li := &doc.LineItems[i]
		li.Amount = li.Quantity.Mul(li.Price)
		li.Total = li.Amount.Sub(li.DiscountAmount).Add(li.TaxAmount)
		subTotal = subTotal.Add(li.Total)
	}
	doc.SubTotal = subTotal

	switch doc.DiscountType {
	case DiscountPercentage:
		doc.DiscountAmount = doc.DiscountValue.Div(hundred).Mul(subTotal)
	case DiscountFixed:
		doc.DiscountAmount = doc.DiscountValue
	default:
		doc.DiscountAmount = decimal.Zero
	}

	if taxPerItem {
		doc.LineTaxes = []LineTax{}
		doc.TaxAmount = decimal.Zero
	} else {
		doc.LineTaxes, doc.TaxAmount = c.applyTaxes(subTotal, ActiveTaxes(taxes))
	}

	doc.Total = subTotal.Sub(doc.DiscountAmount).Add(doc.TaxAmount)
	doc.Touch(now)
}

// ActiveTaxes turns the non-deleted tax records into an unpriced breakdown
func ActiveTaxes(taxes []finance.Tax) []LineTax {
	out := make([]LineTax, 0, len(taxes))
	for _, t := range taxes {
		if t.IsDeleted {
			continue
		}
		out = append(out, LineTax{
			TaxID:       t.ID,
			Name:        t.Name,
			Percent:     t.Percent,
			CompoundTax: t.CompoundTax,
		})
	}
	return out
}

// applyTaxes prices each entry against base. In flat mode every tax uses the
// same base. In compound mode simple taxes go first, then each compound tax
// is applied on base plus everything accumulated so far.
func (c *Calculator) applyTaxes(base decimal.Decimal, taxes []LineTax) ([]LineTax, decimal.Decimal) {
	priced := make([]LineTax, len(taxes))
	copy(priced, taxes)
	total := decimal.Zero

	for i := range priced {
		if c.compoundTaxes && priced[i].CompoundTax {
			continue
		}
		priced[i].Amount = percentOf(base, priced[i].Percent)
		total = total.Add(priced[i].Amount)
	}
	if c.compoundTaxes {
		for i := range priced {
			if !priced[i].CompoundTax {
				continue
			}
			priced[i].Amount = percentOf(base.Add(total), priced[i].Percent)
			total = total.Add(priced[i].Amount)
		}
	}
	return priced, total
}

func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Div(hundred).Mul(percent)
}
