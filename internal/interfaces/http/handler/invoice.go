package handler

import (
	"github.com/erp/invoicing/internal/application/state"
	tradeapp "github.com/erp/invoicing/internal/application/trade"
	"github.com/erp/invoicing/internal/domain/trade"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	store   *state.Store
	service *tradeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(store *state.Store, service *tradeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{store: store, service: service}
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        include_deleted query bool false "Include removed invoices"
// @Success      200 {object} dto.Response
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	invoices := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, orEmpty(invoices), len(invoices))
}

// GetByID godoc
// @Summary      Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoice := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if invoice == nil {
		h.NotFound(c, "Invoice not found")
		return
	}
	h.Success(c, invoice)
}

// Balance godoc
// @Summary      Invoice total, paid amount and amount due
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id}/balance [get]
func (h *InvoiceHandler) Balance(c *gin.Context) {
	balance := h.service.Balance(h.store.Snapshot(), c.Param("id"))
	if balance == nil {
		h.NotFound(c, "Invoice not found")
		return
	}
	h.Success(c, balance)
}

// Create godoc
// @Summary      Create a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateInvoiceInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var in tradeapp.CreateInvoiceInput
	if !h.BindJSON(c, &in) {
		return
	}
	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.Create(st, in)
	})
	h.Created(c, invoice)
}

// CreateFromEstimate godoc
// @Summary      Convert an estimate into a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        estimateId path string true "Estimate ID"
// @Param        request body tradeapp.FromEstimateInput false "Optional overrides"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/from-estimate/{estimateId} [post]
func (h *InvoiceHandler) CreateFromEstimate(c *gin.Context) {
	var in tradeapp.FromEstimateInput
	// the body is optional
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &in) {
		return
	}
	estimateID := c.Param("estimateId")

	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.CreateFromEstimate(st, estimateID, in)
	})
	if invoice == nil {
		h.NotFound(c, "Estimate not found")
		return
	}
	h.Created(c, invoice)
}

// Update godoc
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body tradeapp.UpdateInvoiceInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *gin.Context) {
	var in tradeapp.UpdateInvoiceInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.Update(st, in)
	})
	h.respondInvoice(c, invoice)
}

// AddLineItem godoc
// @Summary      Add a line item to an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body tradeapp.LineItemInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id}/items [post]
func (h *InvoiceHandler) AddLineItem(c *gin.Context) {
	var in tradeapp.LineItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	id := c.Param("id")

	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.AddLineItem(st, id, in)
	})
	h.respondInvoice(c, invoice)
}

// UpdateLineItem godoc
// @Summary      Update a line item of an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        lineId path string true "Line item ID"
// @Param        request body tradeapp.UpdateLineItemInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id}/items/{lineId} [patch]
func (h *InvoiceHandler) UpdateLineItem(c *gin.Context) {
	var in tradeapp.UpdateLineItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	id, lineID := c.Param("id"), c.Param("lineId")

	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.UpdateLineItem(st, id, lineID, in)
	})
	h.respondInvoice(c, invoice)
}

// RemoveLineItem godoc
// @Summary      Remove a line item from an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        lineId path string true "Line item ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id}/items/{lineId} [delete]
func (h *InvoiceHandler) RemoveLineItem(c *gin.Context) {
	id, lineID := c.Param("id"), c.Param("lineId")

	invoice := mutate(c, h.store, func(st state.State) (*trade.Invoice, state.Delta) {
		return h.service.RemoveLineItem(st, id, lineID)
	})
	h.respondInvoice(c, invoice)
}

// Delete godoc
// @Summary      Soft-delete invoices
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/delete [post]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]trade.Invoice, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "invoices")
}

// Restore godoc
// @Summary      Undo an invoice soft-delete
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/restore [post]
func (h *InvoiceHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]trade.Invoice, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "invoices")
}

// MarkSent godoc
// @Summary      Mark invoices as sent
// @Description  Removed invoices are skipped
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /invoices/mark-sent [post]
func (h *InvoiceHandler) MarkSent(c *gin.Context) {
	h.mark(c, h.service.MarkSent)
}

// MarkCompleted godoc
// @Summary      Mark invoices as completed
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /invoices/mark-completed [post]
func (h *InvoiceHandler) MarkCompleted(c *gin.Context) {
	h.mark(c, h.service.MarkCompleted)
}

// MarkPaid godoc
// @Summary      Mark invoices as paid
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /invoices/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.mark(c, h.service.MarkPaid)
}

// MarkUnpaid godoc
// @Summary      Mark invoices as unpaid
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /invoices/mark-unpaid [post]
func (h *InvoiceHandler) MarkUnpaid(c *gin.Context) {
	h.mark(c, h.service.MarkUnpaid)
}

func (h *InvoiceHandler) mark(c *gin.Context, op func(state.State, []string) ([]trade.Invoice, state.Delta)) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	changed := mutate(c, h.store, func(st state.State) ([]trade.Invoice, state.Delta) {
		return op(st, ids)
	})
	h.Success(c, orEmpty(changed))
}

func (h *InvoiceHandler) respondInvoice(c *gin.Context, invoice *trade.Invoice) {
	if invoice == nil {
		h.NotFound(c, "Invoice or line item not found")
		return
	}
	h.Success(c, invoice)
}
