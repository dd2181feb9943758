package trade

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/trade"
)

// documentEngine holds what estimates and invoices share: building lines,
// materializing drafts and recalculating against the current settings
type documentEngine struct {
	calc  *trade.Calculator
	clock shared.Clock
	ids   shared.IDGenerator
}

func newDocumentEngine(calc *trade.Calculator, clock shared.Clock, ids shared.IDGenerator) documentEngine {
	if calc == nil {
		calc = trade.NewCalculator()
	}
	return documentEngine{calc: calc, clock: clock, ids: ids}
}

// newDocument materializes a draft with a fresh record and number, prices
// the supplied lines and runs a full recalculation
func (e documentEngine) newDocument(st state.State, number string, in DocumentInput) trade.Document {
	doc := trade.NewDocument(shared.NewRecord(e.ids, e.clock), number)
	doc.CustomerID = in.CustomerID
	if in.Date != nil {
		doc.Date = *in.Date
	}
	doc.Reference = in.Reference
	doc.Notes = in.Notes
	if in.DiscountType != "" {
		doc.DiscountType = in.DiscountType
	}
	doc.DiscountValue = in.DiscountValue
	if st.Settings.DiscountPerItem {
		doc.DiscountPerItem = trade.DiscountPerItemYes
	}
	for _, li := range in.LineItems {
		doc.AddLine(e.calc.CalculateLine(e.ids.NewID(), e.lineInput(st, li)))
	}
	e.recalculate(st, &doc)
	return doc
}

func (e documentEngine) recalculate(st state.State, doc *trade.Document) {
	e.calc.Recalculate(doc, st.Taxes, st.Settings.TaxPerItem, e.clock.Now())
}

// lineInput resolves omitted line fields against the referenced item
func (e documentEngine) lineInput(st state.State, in LineItemInput) trade.LineInput {
	li := trade.LineInput{
		ItemID:        in.ItemID,
		Quantity:      in.Quantity,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		LineTaxes:     in.LineTaxes,
	}
	if li.DiscountType == "" {
		li.DiscountType = trade.DiscountFixed
	}

	item, found := shared.Find(st.Items, in.ItemID)
	switch {
	case in.Price != nil:
		li.Price = *in.Price
	case found:
		li.Price = item.Price
	}
	switch {
	case in.Description != nil:
		li.Description = *in.Description
	case found:
		li.Description = item.Description
	}
	switch {
	case in.Unit != nil:
		li.Unit = *in.Unit
	case found:
		li.Unit = item.Unit
	}
	if li.LineTaxes == nil && found && st.Settings.TaxPerItem {
		li.LineTaxes = itemTaxes(st.Taxes, item)
	}
	return li
}

// itemTaxes returns the unpriced breakdown of the active taxes the item carries
func itemTaxes(taxes []finance.Tax, item catalog.Item) []trade.LineTax {
	applicable := make([]finance.Tax, 0, len(item.Taxes))
	for _, t := range taxes {
		if item.HasTax(t.ID) {
			applicable = append(applicable, t)
		}
	}
	return trade.ActiveTaxes(applicable)
}

// addLine prices a new line and appends it to doc
func (e documentEngine) addLine(st state.State, doc *trade.Document, in LineItemInput) {
	doc.AddLine(e.calc.CalculateLine(e.ids.NewID(), e.lineInput(st, in)))
}

// updateLine merges the patch into an existing line and prices it again.
// doc must already be a private clone.
func (e documentEngine) updateLine(doc *trade.Document, lineID string, in UpdateLineItemInput) bool {
	for i, cur := range doc.LineItems {
		if cur.ID != lineID {
			continue
		}
		li := trade.LineInput{
			ItemID:        cur.ItemID,
			Description:   cur.Description,
			Unit:          cur.Unit,
			Price:         cur.Price,
			Quantity:      cur.Quantity,
			DiscountType:  cur.DiscountType,
			DiscountValue: cur.DiscountValue,
			LineTaxes:     cur.LineTaxes,
		}
		if in.Description != nil {
			li.Description = *in.Description
		}
		if in.Unit != nil {
			li.Unit = *in.Unit
		}
		if in.Quantity != nil {
			li.Quantity = *in.Quantity
		}
		if in.Price != nil {
			li.Price = *in.Price
		}
		if in.DiscountType != nil {
			li.DiscountType = *in.DiscountType
		}
		if in.DiscountValue != nil {
			li.DiscountValue = *in.DiscountValue
		}
		if in.LineTaxes != nil {
			li.LineTaxes = in.LineTaxes
		}
		doc.LineItems[i] = e.calc.CalculateLine(lineID, li)
		return true
	}
	return false
}

// applyPatch copies the present fields of p onto doc
func applyPatch(doc *trade.Document, p DocumentPatch) {
	if p.CustomerID != nil {
		doc.CustomerID = *p.CustomerID
	}
	if p.Date != nil {
		doc.Date = *p.Date
	}
	if p.Reference != nil {
		doc.Reference = *p.Reference
	}
	if p.Notes != nil {
		doc.Notes = *p.Notes
	}
	if p.DiscountType != nil {
		doc.DiscountType = *p.DiscountType
	}
	if p.DiscountValue != nil {
		doc.DiscountValue = *p.DiscountValue
	}
}
