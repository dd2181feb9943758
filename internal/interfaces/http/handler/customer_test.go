package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	partnerapp "github.com/erp/invoicing/internal/application/partner"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/partner"
	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomerHandler(t *testing.T) (*CustomerHandler, *partner.Customer) {
	t.Helper()
	clock := sharedtest.NewFakeClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	svc := partnerapp.NewCustomerService(clock, sharedtest.NewSequenceIDGenerator("cus"))
	store := state.NewStore(state.Default())

	var created *partner.Customer
	store.Update(context.Background(), func(st state.State) state.Delta {
		c, d := svc.Add(st, partnerapp.AddCustomerInput{
			Name:        "Acme Corporation",
			DisplayName: "Acme",
			BillingAddress: partner.Address{
				AddressStreet1: "1 Main St",
				City:           "Springfield",
				Zip:            "62701",
			},
		})
		created = c
		return d
	})
	return NewCustomerHandler(store, svc), created
}

func TestCustomerHandler_GetByID_IncludesLabelAndAddressLines(t *testing.T) {
	h, created := newTestCustomerHandler(t)
	c, w := newTestContext(http.MethodGet, "/customers/"+created.ID)
	c.Params = gin.Params{{Key: "id", Value: created.ID}}

	h.GetByID(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data CustomerResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.Data.ID)
	assert.Equal(t, "Acme Corporation", resp.Data.Name)
	assert.Equal(t, "Acme", resp.Data.Label)
	assert.Equal(t, []string{"1 Main St", "Springfield, 62701"}, resp.Data.BillingLines)
	assert.Empty(t, resp.Data.ShippingLines)
}

func TestCustomerHandler_List_EmptyLinesAreArrays(t *testing.T) {
	h, _ := newTestCustomerHandler(t)
	c, w := newTestContext(http.MethodGet, "/customers")

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Acme", resp.Data[0]["label"])
	assert.Equal(t, []any{}, resp.Data[0]["shippingLines"])
}
