package handler

import (
	catalogapp "github.com/erp/invoicing/internal/application/catalog"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles the item catalog endpoints
type ItemHandler struct {
	BaseHandler
	store   *state.Store
	service *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(store *state.Store, service *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{store: store, service: service}
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        include_deleted query bool false "Include removed items"
// @Success      200 {object} dto.Response
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	items := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, orEmpty(items), len(items))
}

// GetByID godoc
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	item := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if item == nil {
		h.NotFound(c, "Item not found")
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Add an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.AddItemInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var in catalogapp.AddItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	item := mutate(c, h.store, func(st state.State) (*catalog.Item, state.Delta) {
		return h.service.Add(st, in)
	})
	h.Created(c, item)
}

// Update godoc
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body catalogapp.UpdateItemInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	var in catalogapp.UpdateItemInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	item := mutate(c, h.store, func(st state.State) (*catalog.Item, state.Delta) {
		return h.service.Update(st, in)
	})
	if item == nil {
		h.NotFound(c, "Item not found")
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Soft-delete items
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /items/delete [post]
func (h *ItemHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]catalog.Item, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "items")
}

// Restore godoc
// @Summary      Undo an item soft-delete
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /items/restore [post]
func (h *ItemHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]catalog.Item, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "items")
}
