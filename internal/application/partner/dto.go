package partner

import (
	"github.com/erp/invoicing/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// AddCustomerInput represents a request to add a customer. Only the name is
// required; see customerDefaults for every other field.
type AddCustomerInput struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	DisplayName     string          `json:"displayName" binding:"max=200"`
	ContactName     string          `json:"contactName" binding:"max=100"`
	Email           string          `json:"email" binding:"omitempty,email,max=200"`
	Phone           string          `json:"phone" binding:"max=50"`
	Website         string          `json:"website" binding:"max=200"`
	Currency        string          `json:"currency" binding:"max=10"`
	Notes           string          `json:"notes"`
	BillingAddress  partner.Address `json:"billingAddress"`
	ShippingAddress partner.Address `json:"shippingAddress"`
}

// UpdateCustomerInput represents a partial update. Nil fields keep their
// current value; addresses are replaced as a whole.
type UpdateCustomerInput struct {
	ID              string           `json:"-"`
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	DisplayName     *string          `json:"displayName" binding:"omitempty,max=200"`
	ContactName     *string          `json:"contactName" binding:"omitempty,max=100"`
	Email           *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Website         *string          `json:"website" binding:"omitempty,max=200"`
	Currency        *string          `json:"currency" binding:"omitempty,max=10"`
	Notes           *string          `json:"notes"`
	BillingAddress  *partner.Address `json:"billingAddress"`
	ShippingAddress *partner.Address `json:"shippingAddress"`
}
