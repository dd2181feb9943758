package partner

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/partner"
	"github.com/erp/invoicing/internal/domain/shared"
)

// CustomerService handles customer-related business operations. Every method
// is a pure function of the given snapshot; the returned Delta must be
// committed by the caller.
type CustomerService struct {
	clock shared.Clock
	ids   shared.IDGenerator
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(clock shared.Clock, ids shared.IDGenerator) *CustomerService {
	return &CustomerService{
		clock: clock,
		ids:   ids,
	}
}

// customerDefaults maps an add request onto a new record. Omitted optional
// fields stay at their zero value: empty strings and empty addresses.
func customerDefaults(rec shared.Record, in AddCustomerInput) partner.Customer {
	return partner.Customer{
		Record:          rec,
		Name:            in.Name,
		DisplayName:     in.DisplayName,
		ContactName:     in.ContactName,
		Email:           in.Email,
		Phone:           in.Phone,
		Website:         in.Website,
		Currency:        in.Currency,
		Notes:           in.Notes,
		BillingAddress:  in.BillingAddress,
		ShippingAddress: in.ShippingAddress,
	}
}

// List returns the customers ordered by creation time
func (s *CustomerService) List(st state.State, includeDeleted bool) []partner.Customer {
	if includeDeleted {
		return shared.Sorted(st.Customers)
	}
	return shared.Sorted(shared.Active(st.Customers))
}

// Get returns a customer by ID, or nil
func (s *CustomerService) Get(st state.State, id string) *partner.Customer {
	c, ok := shared.Find(st.Customers, id)
	if !ok {
		return nil
	}
	return &c
}

// Add creates a new customer
func (s *CustomerService) Add(st state.State, in AddCustomerInput) (*partner.Customer, state.Delta) {
	c := customerDefaults(shared.NewRecord(s.ids, s.clock), in)
	return &c, state.Delta{Customers: shared.Append(st.Customers, c)}
}

// Update overwrites the fields present in the input. It returns nil and an
// empty delta when the customer does not exist.
func (s *CustomerService) Update(st state.State, in UpdateCustomerInput) (*partner.Customer, state.Delta) {
	c, ok := shared.Find(st.Customers, in.ID)
	if !ok {
		return nil, state.Delta{}
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.DisplayName != nil {
		c.DisplayName = *in.DisplayName
	}
	if in.ContactName != nil {
		c.ContactName = *in.ContactName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.Currency != nil {
		c.Currency = *in.Currency
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.BillingAddress != nil {
		c.BillingAddress = *in.BillingAddress
	}
	if in.ShippingAddress != nil {
		c.ShippingAddress = *in.ShippingAddress
	}
	c.Touch(s.clock.Now())

	return &c, state.Delta{Customers: shared.Replace(st.Customers, c)}
}

// Remove soft-deletes the matching customers and returns them as they were
// before deletion, or nil when nothing matched
func (s *CustomerService) Remove(st state.State, ids []string) ([]partner.Customer, state.Delta) {
	next, removed := shared.SoftDelete(st.Customers, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Customers: next}
}

// UndoRemove restores soft-deleted customers
func (s *CustomerService) UndoRemove(st state.State, ids []string) ([]partner.Customer, state.Delta) {
	next, restored := shared.Restore(st.Customers, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Customers: next}
}
