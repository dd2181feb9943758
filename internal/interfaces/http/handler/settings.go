package handler

import (
	settingapp "github.com/erp/invoicing/internal/application/setting"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/setting"
	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the single settings record
type SettingsHandler struct {
	BaseHandler
	store   *state.Store
	service *settingapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(store *state.Store, service *settingapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{store: store, service: service}
}

// Get godoc
// @Summary      Get the settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	h.Success(c, h.service.Get(h.store.Snapshot()))
}

// Update godoc
// @Summary      Merge fields into the settings
// @Description  Omitted fields keep their value; company is replaced as a whole
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingapp.UpdateSettingsInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /settings [patch]
func (h *SettingsHandler) Update(c *gin.Context) {
	var in settingapp.UpdateSettingsInput
	if !h.BindJSON(c, &in) {
		return
	}
	settings := mutate(c, h.store, func(st state.State) (*setting.Settings, state.Delta) {
		return h.service.Update(st, in)
	})
	if settings == nil {
		h.Success(c, h.service.Get(h.store.Snapshot()))
		return
	}
	h.Success(c, settings)
}
