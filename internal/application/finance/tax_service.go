package finance

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
)

// TaxService handles tax-related business operations. Removing a tax only
// affects documents recalculated afterwards.
type TaxService struct {
	clock shared.Clock
	ids   shared.IDGenerator
}

// NewTaxService creates a new TaxService
func NewTaxService(clock shared.Clock, ids shared.IDGenerator) *TaxService {
	return &TaxService{
		clock: clock,
		ids:   ids,
	}
}

func taxDefaults(rec shared.Record, in AddTaxInput) finance.Tax {
	return finance.Tax{
		Record:        rec,
		Name:          in.Name,
		Percent:       in.Percent,
		CompoundTax:   in.CompoundTax,
		CollectiveTax: in.CollectiveTax,
		Description:   in.Description,
	}
}

// List returns the taxes ordered by creation time
func (s *TaxService) List(st state.State, includeDeleted bool) []finance.Tax {
	if includeDeleted {
		return shared.Sorted(st.Taxes)
	}
	return shared.Sorted(shared.Active(st.Taxes))
}

// Get returns a tax by ID, or nil
func (s *TaxService) Get(st state.State, id string) *finance.Tax {
	tax, ok := shared.Find(st.Taxes, id)
	if !ok {
		return nil
	}
	return &tax
}

// Add creates a new tax
func (s *TaxService) Add(st state.State, in AddTaxInput) (*finance.Tax, state.Delta) {
	tax := taxDefaults(shared.NewRecord(s.ids, s.clock), in)
	return &tax, state.Delta{Taxes: shared.Append(st.Taxes, tax)}
}

// Update overwrites the fields present in the input
func (s *TaxService) Update(st state.State, in UpdateTaxInput) (*finance.Tax, state.Delta) {
	tax, ok := shared.Find(st.Taxes, in.ID)
	if !ok {
		return nil, state.Delta{}
	}

	if in.Name != nil {
		tax.Name = *in.Name
	}
	if in.Percent != nil {
		tax.Percent = *in.Percent
	}
	if in.CompoundTax != nil {
		tax.CompoundTax = *in.CompoundTax
	}
	if in.CollectiveTax != nil {
		tax.CollectiveTax = *in.CollectiveTax
	}
	if in.Description != nil {
		tax.Description = *in.Description
	}
	tax.Touch(s.clock.Now())

	return &tax, state.Delta{Taxes: shared.Replace(st.Taxes, tax)}
}

// Remove soft-deletes the matching taxes
func (s *TaxService) Remove(st state.State, ids []string) ([]finance.Tax, state.Delta) {
	next, removed := shared.SoftDelete(st.Taxes, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Taxes: next}
}

// UndoRemove restores soft-deleted taxes
func (s *TaxService) UndoRemove(st state.State, ids []string) ([]finance.Tax, state.Delta) {
	next, restored := shared.Restore(st.Taxes, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Taxes: next}
}
