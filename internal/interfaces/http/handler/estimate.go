package handler

import (
	"github.com/erp/invoicing/internal/application/state"
	tradeapp "github.com/erp/invoicing/internal/application/trade"
	"github.com/erp/invoicing/internal/domain/trade"
	"github.com/gin-gonic/gin"
)

// EstimateHandler handles estimate-related API endpoints
type EstimateHandler struct {
	BaseHandler
	store   *state.Store
	service *tradeapp.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(store *state.Store, service *tradeapp.EstimateService) *EstimateHandler {
	return &EstimateHandler{store: store, service: service}
}

// List godoc
// @Summary      List estimates
// @Tags         estimates
// @Produce      json
// @Param        include_deleted query bool false "Include removed estimates"
// @Success      200 {object} dto.Response
// @Router       /estimates [get]
func (h *EstimateHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	estimates := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, orEmpty(estimates), len(estimates))
}

// GetByID godoc
// @Summary      Get estimate by ID
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetByID(c *gin.Context) {
	estimate := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if estimate == nil {
		h.NotFound(c, "Estimate not found")
		return
	}
	h.Success(c, estimate)
}

// Create godoc
// @Summary      Create a draft estimate
// @Description  Numbers the estimate from the settings prefix and prices every line
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateEstimateInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	var in tradeapp.CreateEstimateInput
	if !h.BindJSON(c, &in) {
		return
	}
	estimate := mutate(c, h.store, func(st state.State) (*trade.Estimate, state.Delta) {
		return h.service.Create(st, in)
	})
	h.Created(c, estimate)
}

// Update godoc
// @Summary      Update an estimate
// @Description  Merges the given fields and recalculates the totals
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body tradeapp.UpdateEstimateInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/{id} [patch]
func (h *EstimateHandler) Update(c *gin.Context) {
	var in tradeapp.UpdateEstimateInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	estimate := mutate(c, h.store, func(st state.State) (*trade.Estimate, state.Delta) {
		return h.service.Update(st, in)
	})
	h.respondEstimate(c, estimate)
}

// AddLineItem godoc
// @Summary      Add a line item to an estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body tradeapp.LineItemInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/{id}/items [post]
func (h *EstimateHandler) AddLineItem(c *gin.Context) {
	var in tradeapp.LineItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	id := c.Param("id")

	estimate := mutate(c, h.store, func(st state.State) (*trade.Estimate, state.Delta) {
		return h.service.AddLineItem(st, id, in)
	})
	h.respondEstimate(c, estimate)
}

// UpdateLineItem godoc
// @Summary      Update a line item of an estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        lineId path string true "Line item ID"
// @Param        request body tradeapp.UpdateLineItemInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/{id}/items/{lineId} [patch]
func (h *EstimateHandler) UpdateLineItem(c *gin.Context) {
	var in tradeapp.UpdateLineItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	id, lineID := c.Param("id"), c.Param("lineId")

	estimate := mutate(c, h.store, func(st state.State) (*trade.Estimate, state.Delta) {
		return h.service.UpdateLineItem(st, id, lineID, in)
	})
	h.respondEstimate(c, estimate)
}

// RemoveLineItem godoc
// @Summary      Remove a line item from an estimate
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        lineId path string true "Line item ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/{id}/items/{lineId} [delete]
func (h *EstimateHandler) RemoveLineItem(c *gin.Context) {
	id, lineID := c.Param("id"), c.Param("lineId")

	estimate := mutate(c, h.store, func(st state.State) (*trade.Estimate, state.Delta) {
		return h.service.RemoveLineItem(st, id, lineID)
	})
	h.respondEstimate(c, estimate)
}

// Delete godoc
// @Summary      Soft-delete estimates
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/delete [post]
func (h *EstimateHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]trade.Estimate, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "estimates")
}

// Restore godoc
// @Summary      Undo an estimate soft-delete
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /estimates/restore [post]
func (h *EstimateHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]trade.Estimate, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "estimates")
}

// MarkSent godoc
// @Summary      Mark estimates as sent
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /estimates/mark-sent [post]
func (h *EstimateHandler) MarkSent(c *gin.Context) {
	h.mark(c, h.service.MarkSent)
}

// MarkAccepted godoc
// @Summary      Mark estimates as accepted
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /estimates/mark-accepted [post]
func (h *EstimateHandler) MarkAccepted(c *gin.Context) {
	h.mark(c, h.service.MarkAccepted)
}

// MarkRejected godoc
// @Summary      Mark estimates as rejected
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /estimates/mark-rejected [post]
func (h *EstimateHandler) MarkRejected(c *gin.Context) {
	h.mark(c, h.service.MarkRejected)
}

// mark answers 200 with the changed estimates, an empty list when none matched
func (h *EstimateHandler) mark(c *gin.Context, op func(state.State, []string) ([]trade.Estimate, state.Delta)) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	changed := mutate(c, h.store, func(st state.State) ([]trade.Estimate, state.Delta) {
		return op(st, ids)
	})
	h.Success(c, orEmpty(changed))
}

func (h *EstimateHandler) respondEstimate(c *gin.Context, estimate *trade.Estimate) {
	if estimate == nil {
		h.NotFound(c, "Estimate or line item not found")
		return
	}
	h.Success(c, estimate)
}
