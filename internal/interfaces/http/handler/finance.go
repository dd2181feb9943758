package handler

import (
	financeapp "github.com/erp/invoicing/internal/application/finance"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Taxes
// =============================================================================

// TaxHandler handles the tax rate endpoints
type TaxHandler struct {
	BaseHandler
	store   *state.Store
	service *financeapp.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(store *state.Store, service *financeapp.TaxService) *TaxHandler {
	return &TaxHandler{store: store, service: service}
}

// List godoc
// @Summary      List taxes
// @Tags         taxes
// @Produce      json
// @Param        include_deleted query bool false "Include removed taxes"
// @Success      200 {object} dto.Response
// @Router       /taxes [get]
func (h *TaxHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	taxes := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, orEmpty(taxes), len(taxes))
}

// GetByID godoc
// @Summary      Get tax by ID
// @Tags         taxes
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /taxes/{id} [get]
func (h *TaxHandler) GetByID(c *gin.Context) {
	tax := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if tax == nil {
		h.NotFound(c, "Tax not found")
		return
	}
	h.Success(c, tax)
}

// Create godoc
// @Summary      Add a tax rate
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        request body financeapp.AddTaxInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /taxes [post]
func (h *TaxHandler) Create(c *gin.Context) {
	var in financeapp.AddTaxInput
	if !h.BindJSON(c, &in) {
		return
	}
	tax := mutate(c, h.store, func(st state.State) (*finance.Tax, state.Delta) {
		return h.service.Add(st, in)
	})
	h.Created(c, tax)
}

// Update godoc
// @Summary      Update a tax rate
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body financeapp.UpdateTaxInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /taxes/{id} [patch]
func (h *TaxHandler) Update(c *gin.Context) {
	var in financeapp.UpdateTaxInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	tax := mutate(c, h.store, func(st state.State) (*finance.Tax, state.Delta) {
		return h.service.Update(st, in)
	})
	if tax == nil {
		h.NotFound(c, "Tax not found")
		return
	}
	h.Success(c, tax)
}

// Delete godoc
// @Summary      Soft-delete taxes
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /taxes/delete [post]
func (h *TaxHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]finance.Tax, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "taxes")
}

// Restore godoc
// @Summary      Undo a tax soft-delete
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /taxes/restore [post]
func (h *TaxHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]finance.Tax, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "taxes")
}

// =============================================================================
// Expenses
// =============================================================================

// ExpenseHandler handles the expense endpoints
type ExpenseHandler struct {
	BaseHandler
	store   *state.Store
	service *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(store *state.Store, service *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{store: store, service: service}
}

// ExpenseTotalResponse is the sum of all active expenses
type ExpenseTotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

// List godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        include_deleted query bool false "Include removed expenses"
// @Success      200 {object} dto.Response
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	includeDeleted, ok := h.includeDeleted(c)
	if !ok {
		return
	}
	expenses := h.service.List(h.store.Snapshot(), includeDeleted)
	h.SuccessList(c, orEmpty(expenses), len(expenses))
}

// GetByID godoc
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expense := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if expense == nil {
		h.NotFound(c, "Expense not found")
		return
	}
	h.Success(c, expense)
}

// Total godoc
// @Summary      Sum of active expenses
// @Tags         expenses
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /expenses/total [get]
func (h *ExpenseHandler) Total(c *gin.Context) {
	h.Success(c, ExpenseTotalResponse{Total: h.service.Total(h.store.Snapshot())})
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.AddExpenseInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var in financeapp.AddExpenseInput
	if !h.BindJSON(c, &in) {
		return
	}
	expense := mutate(c, h.store, func(st state.State) (*finance.Expense, state.Delta) {
		return h.service.Add(st, in)
	})
	h.Created(c, expense)
}

// Update godoc
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body financeapp.UpdateExpenseInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c *gin.Context) {
	var in financeapp.UpdateExpenseInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	expense := mutate(c, h.store, func(st state.State) (*finance.Expense, state.Delta) {
		return h.service.Update(st, in)
	})
	if expense == nil {
		h.NotFound(c, "Expense not found")
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @Summary      Soft-delete expenses
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /expenses/delete [post]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	removed := mutate(c, h.store, func(st state.State) ([]finance.Expense, state.Delta) {
		return h.service.Remove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, removed, "expenses")
}

// Restore godoc
// @Summary      Undo an expense soft-delete
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /expenses/restore [post]
func (h *ExpenseHandler) Restore(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	restored := mutate(c, h.store, func(st state.State) ([]finance.Expense, state.Delta) {
		return h.service.UndoRemove(st, ids)
	})
	respondMatched(&h.BaseHandler, c, restored, "expenses")
}

// =============================================================================
// Payments
// =============================================================================

// PaymentHandler handles the payment endpoints. Payments have no soft
// delete; Delete removes them for good.
type PaymentHandler struct {
	BaseHandler
	store   *state.Store
	service *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(store *state.Store, service *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{store: store, service: service}
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments := h.service.List(h.store.Snapshot())
	h.SuccessList(c, orEmpty(payments), len(payments))
}

// GetByID godoc
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	payment := h.service.Get(h.store.Snapshot(), c.Param("id"))
	if payment == nil {
		h.NotFound(c, "Payment not found")
		return
	}
	h.Success(c, payment)
}

// Create godoc
// @Summary      Record a payment against an invoice
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body financeapp.AddPaymentInput true "Fields"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var in financeapp.AddPaymentInput
	if !h.BindJSON(c, &in) {
		return
	}
	payment := mutate(c, h.store, func(st state.State) (*finance.Payment, state.Delta) {
		return h.service.Add(st, in)
	})
	h.Created(c, payment)
}

// Update godoc
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        request body financeapp.UpdatePaymentInput true "Fields"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payments/{id} [patch]
func (h *PaymentHandler) Update(c *gin.Context) {
	var in financeapp.UpdatePaymentInput
	if !h.BindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	payment := mutate(c, h.store, func(st state.State) (*finance.Payment, state.Delta) {
		return h.service.Update(st, in)
	})
	if payment == nil {
		h.NotFound(c, "Payment not found")
		return
	}
	h.Success(c, payment)
}

// Delete godoc
// @Summary      Delete payments
// @Description  Payments are removed for good, there is no restore
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payments/delete [post]
func (h *PaymentHandler) Delete(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	deleted := mutate(c, h.store, func(st state.State) ([]finance.Payment, state.Delta) {
		return h.service.Delete(st, ids)
	})
	respondMatched(&h.BaseHandler, c, deleted, "payments")
}
