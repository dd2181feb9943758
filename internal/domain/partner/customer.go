package partner

import (
	"strings"

	"github.com/erp/invoicing/internal/domain/shared"
)

// Address is a postal block used for both billing and shipping
type Address struct {
	Name           string `json:"name"`
	AddressStreet1 string `json:"addressStreet1"`
	AddressStreet2 string `json:"addressStreet2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Zip            string `json:"zip"`
	Fax            string `json:"fax"`
	Phone          string `json:"phone"`
}

// Lines returns the non-empty address lines in print order
func (a Address) Lines() []string {
	cityLine := strings.TrimSpace(strings.Join(nonEmpty(a.City, a.State, a.Zip), ", "))
	return nonEmpty(a.Name, a.AddressStreet1, a.AddressStreet2, cityLine, a.Country)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Customer is a billable party with a profile and two address blocks
type Customer struct {
	shared.Record
	Name            string  `json:"name"`
	DisplayName     string  `json:"displayName"`
	ContactName     string  `json:"contactName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Website         string  `json:"website"`
	Currency        string  `json:"currency"`
	Notes           string  `json:"notes"`
	BillingAddress  Address `json:"billingAddress"`
	ShippingAddress Address `json:"shippingAddress"`
}

// Label returns the display name, falling back to the legal name
func (c Customer) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
