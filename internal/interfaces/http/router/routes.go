package router

import (
	"github.com/erp/invoicing/internal/interfaces/http/handler"
)

// Handlers bundles every handler the API serves
type Handlers struct {
	Customers *handler.CustomerHandler
	Items     *handler.ItemHandler
	Taxes     *handler.TaxHandler
	Expenses  *handler.ExpenseHandler
	Payments  *handler.PaymentHandler
	Estimates *handler.EstimateHandler
	Invoices  *handler.InvoiceHandler
	Settings  *handler.SettingsHandler
	System    *handler.SystemHandler
}

// Groups builds the resource groups of the invoicing API. Static paths such
// as /delete are registered next to /:id; gin resolves static segments first.
func Groups(h Handlers) []RouteRegistrar {
	customers := NewDomainGroup("customers", "/customers").
		GET("", h.Customers.List).
		POST("", h.Customers.Create).
		GET("/:id", h.Customers.GetByID).
		PATCH("/:id", h.Customers.Update).
		POST("/delete", h.Customers.Delete).
		POST("/restore", h.Customers.Restore)

	items := NewDomainGroup("items", "/items").
		GET("", h.Items.List).
		POST("", h.Items.Create).
		GET("/:id", h.Items.GetByID).
		PATCH("/:id", h.Items.Update).
		POST("/delete", h.Items.Delete).
		POST("/restore", h.Items.Restore)

	taxes := NewDomainGroup("taxes", "/taxes").
		GET("", h.Taxes.List).
		POST("", h.Taxes.Create).
		GET("/:id", h.Taxes.GetByID).
		PATCH("/:id", h.Taxes.Update).
		POST("/delete", h.Taxes.Delete).
		POST("/restore", h.Taxes.Restore)

	expenses := NewDomainGroup("expenses", "/expenses").
		GET("", h.Expenses.List).
		POST("", h.Expenses.Create).
		GET("/total", h.Expenses.Total).
		GET("/:id", h.Expenses.GetByID).
		PATCH("/:id", h.Expenses.Update).
		POST("/delete", h.Expenses.Delete).
		POST("/restore", h.Expenses.Restore)

	payments := NewDomainGroup("payments", "/payments").
		GET("", h.Payments.List).
		POST("", h.Payments.Create).
		GET("/:id", h.Payments.GetByID).
		PATCH("/:id", h.Payments.Update).
		POST("/delete", h.Payments.Delete)

	estimates := NewDomainGroup("estimates", "/estimates").
		GET("", h.Estimates.List).
		POST("", h.Estimates.Create).
		GET("/:id", h.Estimates.GetByID).
		PATCH("/:id", h.Estimates.Update).
		POST("/:id/items", h.Estimates.AddLineItem).
		PATCH("/:id/items/:lineId", h.Estimates.UpdateLineItem).
		DELETE("/:id/items/:lineId", h.Estimates.RemoveLineItem).
		POST("/delete", h.Estimates.Delete).
		POST("/restore", h.Estimates.Restore).
		POST("/mark-sent", h.Estimates.MarkSent).
		POST("/mark-accepted", h.Estimates.MarkAccepted).
		POST("/mark-rejected", h.Estimates.MarkRejected)

	invoices := NewDomainGroup("invoices", "/invoices").
		GET("", h.Invoices.List).
		POST("", h.Invoices.Create).
		GET("/:id", h.Invoices.GetByID).
		GET("/:id/balance", h.Invoices.Balance).
		PATCH("/:id", h.Invoices.Update).
		POST("/:id/items", h.Invoices.AddLineItem).
		PATCH("/:id/items/:lineId", h.Invoices.UpdateLineItem).
		DELETE("/:id/items/:lineId", h.Invoices.RemoveLineItem).
		POST("/from-estimate/:estimateId", h.Invoices.CreateFromEstimate).
		POST("/delete", h.Invoices.Delete).
		POST("/restore", h.Invoices.Restore).
		POST("/mark-sent", h.Invoices.MarkSent).
		POST("/mark-completed", h.Invoices.MarkCompleted).
		POST("/mark-paid", h.Invoices.MarkPaid).
		POST("/mark-unpaid", h.Invoices.MarkUnpaid)

	settings := NewDomainGroup("settings", "/settings").
		GET("", h.Settings.Get).
		PATCH("", h.Settings.Update)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{customers, items, taxes, expenses, payments, estimates, invoices, settings, system}
}
