package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	SetupValidator()
}

type TestHeader struct {
	CustomerID string `json:"customerId" binding:"required"`
}

type testLine struct {
	ItemID       string `json:"itemId" binding:"required"`
	DiscountType string `json:"discountType" binding:"omitempty,oneof=fixed percentage"`
}

type testDocument struct {
	TestHeader
	Reference string     `json:"reference" binding:"max=5"`
	LineItems []testLine `json:"lineItems" binding:"dive"`
}

func TestValidationDetails(t *testing.T) {
	err := binding.Validator.ValidateStruct(&testDocument{
		Reference: "too long",
		LineItems: []testLine{{ItemID: "item-1", DiscountType: "bogus"}, {}},
	})
	require.Error(t, err)

	details := ValidationDetails(err)
	got := map[string]string{}
	for _, d := range details {
		got[d.Field] = d.Message
	}

	assert.Equal(t, "This field is required", got["customerId"])
	assert.Equal(t, "Must be at most 5 characters", got["reference"])
	assert.Equal(t, "Must be one of: fixed percentage", got["lineItems[0].discountType"])
	assert.Equal(t, "This field is required", got["lineItems[1].itemId"])
}

func TestValidationDetails_OtherErrors(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
}
