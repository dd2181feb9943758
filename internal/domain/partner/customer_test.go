package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_Lines(t *testing.T) {
	addr := Address{
		Name:           "Acme Corp",
		AddressStreet1: "1 Main St",
		City:           "Springfield",
		State:          "IL",
		Zip:            "62701",
		Country:        "US",
	}

	assert.Equal(t, []string{"Acme Corp", "1 Main St", "Springfield, IL, 62701", "US"}, addr.Lines())
	assert.Empty(t, Address{}.Lines())
}

func TestCustomer_Label(t *testing.T) {
	assert.Equal(t, "Acme", Customer{Name: "Acme Corporation", DisplayName: "Acme"}.Label())
	assert.Equal(t, "Acme Corporation", Customer{Name: "Acme Corporation"}.Label())
}
