package catalog

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/shared"
)

// ItemService handles item-related business operations
type ItemService struct {
	clock shared.Clock
	ids   shared.IDGenerator
}

// NewItemService creates a new ItemService
func NewItemService(clock shared.Clock, ids shared.IDGenerator) *ItemService {
	return &ItemService{
		clock: clock,
		ids:   ids,
	}
}

// itemDefaults maps an add request onto a new record; an omitted tax list
// becomes empty
func itemDefaults(rec shared.Record, in AddItemInput) catalog.Item {
	taxes := make([]string, len(in.Taxes))
	copy(taxes, in.Taxes)
	return catalog.Item{
		Record:      rec,
		Name:        in.Name,
		Price:       in.Price,
		Unit:        in.Unit,
		Description: in.Description,
		Taxes:       taxes,
	}
}

// List returns the items ordered by creation time
func (s *ItemService) List(st state.State, includeDeleted bool) []catalog.Item {
	if includeDeleted {
		return shared.Sorted(st.Items)
	}
	return shared.Sorted(shared.Active(st.Items))
}

// Get returns an item by ID, or nil
func (s *ItemService) Get(st state.State, id string) *catalog.Item {
	item, ok := shared.Find(st.Items, id)
	if !ok {
		return nil
	}
	return &item
}

// Add creates a new item
func (s *ItemService) Add(st state.State, in AddItemInput) (*catalog.Item, state.Delta) {
	item := itemDefaults(shared.NewRecord(s.ids, s.clock), in)
	return &item, state.Delta{Items: shared.Append(st.Items, item)}
}

// Update overwrites the fields present in the input. A non-nil Taxes list
// replaces the current one.
func (s *ItemService) Update(st state.State, in UpdateItemInput) (*catalog.Item, state.Delta) {
	item, ok := shared.Find(st.Items, in.ID)
	if !ok {
		return nil, state.Delta{}
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Taxes != nil {
		item.Taxes = append([]string{}, in.Taxes...)
	}
	item.Touch(s.clock.Now())

	return &item, state.Delta{Items: shared.Replace(st.Items, item)}
}

// Remove soft-deletes the matching items
func (s *ItemService) Remove(st state.State, ids []string) ([]catalog.Item, state.Delta) {
	next, removed := shared.SoftDelete(st.Items, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Items: next}
}

// UndoRemove restores soft-deleted items
func (s *ItemService) UndoRemove(st state.State, ids []string) ([]catalog.Item, state.Delta) {
	next, restored := shared.Restore(st.Items, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Items: next}
}
