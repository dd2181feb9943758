package handler

import (
	partnerapp "github.com/erp/invoicing/internal/application/partner"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	store   *state.Store
	service *partnerapp.CustomerService
}

// CustomerResponse is a customer with its display label and printable
// address blocks
type CustomerResponse struct {
	partner.Customer
	Label         string   `json:"label"`
	BillingLines  []string `json:"billingLines"`
	ShippingLines []string `json:"shippingLines"`
}

func toCustomerResponse(c partner.Customer) CustomerResponse {
	return CustomerResponse{
		Customer:      c,
		Label:         c.Label(),
		BillingLines:  c.BillingAddress.Lines(),
		ShippingLines: c.ShippingAddress.Lines(),
	}
}

func toCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = toCustomerResponse(c)
	}
	return out
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(store *state.Store, service *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{store: store, service: service}
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        include_deleted query bool false "Include removed customers"
// @Success      200 {object} dto.Response
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	customers := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, toCustomerResponses(customers), len(customers))
}

// GetByID godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customer := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if customer == nil {
		h.NotFound(c, "Customer not found")
		return
	}
	h.Success(c, toCustomerResponse(*customer))
}

// Create godoc
// @Summary      Add a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.AddCustomerInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var in partnerapp.AddCustomerInput
	if !h.BindJSON(c, &in) {
		return
	}
	customer := mutate(c, h.store, func(st state.State) (*partner.Customer, state.Delta) {
		return h.service.Add(st, in)
	})
	h.Created(c, toCustomerResponse(*customer))
}

// Update godoc
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body partnerapp.UpdateCustomerInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	var in partnerapp.UpdateCustomerInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	customer := mutate(c, h.store, func(st state.State) (*partner.Customer, state.Delta) {
		return h.service.Update(st, in)
	})
	if customer == nil {
		h.NotFound(c, "Customer not found")
		return
	}
	h.Success(c, toCustomerResponse(*customer))
}

// Delete godoc
// @Summary      Soft-delete customers
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/delete [post]
func (h *CustomerHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]partner.Customer, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "customers")
}

// Restore godoc
// @Summary      Undo a customer soft-delete
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /customers/restore [post]
func (h *CustomerHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]partner.Customer, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "customers")
}
