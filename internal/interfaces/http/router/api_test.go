package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogapp "github.com/erp/invoicing/internal/application/catalog"
	financeapp "github.com/erp/invoicing/internal/application/finance"
	partnerapp "github.com/erp/invoicing/internal/application/partner"
	settingapp "github.com/erp/invoicing/internal/application/setting"
	"github.com/erp/invoicing/internal/application/state"
	tradeapp "github.com/erp/invoicing/internal/application/trade"
	"github.com/erp/invoicing/internal/domain/shared/sharedtest"
	"github.com/erp/invoicing/internal/interfaces/http/handler"
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type documentView struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	SubTotal  decimal.Decimal `json:"subTotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
	LineItems []struct {
		ID    string          `json:"id"`
		Total decimal.Decimal `json:"total"`
	} `json:"lineItems"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	middleware.SetupValidator()

	clock := sharedtest.NewFakeClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	ids := sharedtest.NewSequenceIDGenerator("id")
	store := state.NewStore(state.Default())

	h := Handlers{
		Customers: handler.NewCustomerHandler(store, partnerapp.NewCustomerService(clock, ids)),
		Items:     handler.NewItemHandler(store, catalogapp.NewItemService(clock, ids)),
		Taxes:     handler.NewTaxHandler(store, financeapp.NewTaxService(clock, ids)),
		Expenses:  handler.NewExpenseHandler(store, financeapp.NewExpenseService(clock, ids)),
		Payments:  handler.NewPaymentHandler(store, financeapp.NewPaymentService(clock, ids)),
		Estimates: handler.NewEstimateHandler(store, tradeapp.NewEstimateService(nil, clock, ids)),
		Invoices:  handler.NewInvoiceHandler(store, tradeapp.NewInvoiceService(nil, clock, ids)),
		Settings:  handler.NewSettingsHandler(store, settingapp.NewSettingsService()),
		System:    handler.NewSystemHandler("invoicing", "test", nil),
	}

	engine := gin.New()
	NewRouter(engine).Register(Groups(h)...).Setup()
	return &apiClient{t: t, engine: engine}
}

func (a *apiClient) do(method, path string, body any) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

type idView struct {
	ID string `json:"id"`
}

func TestAPI_EstimateToPaidInvoice(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/api/v1/customers", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, code)
	customer := decodeData[idView](t, env)

	code, env = api.do(http.MethodPost, "/api/v1/taxes", map[string]any{"name": "VAT", "percent": "10"})
	require.Equal(t, http.StatusCreated, code)

	code, env = api.do(http.MethodPost, "/api/v1/items", map[string]any{"name": "Widget", "price": "100", "unit": "pcs"})
	require.Equal(t, http.StatusCreated, code)
	item := decodeData[idView](t, env)

	code, env = api.do(http.MethodPost, "/api/v1/estimates", map[string]any{
		"customerId": customer.ID,
		"lineItems":  []map[string]any{{"itemId": item.ID, "quantity": "2"}},
	})
	require.Equal(t, http.StatusCreated, code)
	estimate := decodeData[documentView](t, env)
	assert.Equal(t, "EST-1001", estimate.Number)
	assert.Equal(t, "DRAFT", estimate.Status)
	assertAmount(t, "200", estimate.SubTotal)
	assertAmount(t, "20", estimate.TaxAmount)
	assertAmount(t, "220", estimate.Total)

	code, env = api.do(http.MethodPost, "/api/v1/invoices/from-estimate/"+estimate.ID, nil)
	require.Equal(t, http.StatusCreated, code)
	invoice := decodeData[documentView](t, env)
	assert.Equal(t, "INV-1001", invoice.Number)
	assert.Equal(t, "EST-1001", invoice.Reference)
	assertAmount(t, "220", invoice.Total)
	require.Len(t, invoice.LineItems, 1)
	assert.NotEqual(t, estimate.LineItems[0].ID, invoice.LineItems[0].ID)

	code, env = api.do(http.MethodPost, "/api/v1/invoices/mark-sent", map[string]any{"ids": []string{invoice.ID}})
	require.Equal(t, http.StatusOK, code)
	sent := decodeData[[]documentView](t, env)
	require.Len(t, sent, 1)
	assert.Equal(t, "SENT", sent[0].Status)

	code, env = api.do(http.MethodPost, "/api/v1/payments", map[string]any{
		"customerId": customer.ID,
		"invoiceId":  invoice.ID,
		"amount":     "100",
	})
	require.Equal(t, http.StatusCreated, code)
	payment := decodeData[struct {
		PaymentNumber string `json:"paymentNumber"`
	}](t, env)
	assert.Equal(t, "PAY-1001", payment.PaymentNumber)

	code, env = api.do(http.MethodGet, "/api/v1/invoices/"+invoice.ID+"/balance", nil)
	require.Equal(t, http.StatusOK, code)
	balance := decodeData[tradeapp.InvoiceBalance](t, env)
	assertAmount(t, "220", balance.Total)
	assertAmount(t, "100", balance.Paid)
	assertAmount(t, "120", balance.Due)

	code, env = api.do(http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestAPI_NotFoundAndEmptyMarks(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodGet, "/api/v1/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)

	code, _ = api.do(http.MethodPost, "/api/v1/invoices/from-estimate/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodPost, "/api/v1/customers/delete", map[string]any{"ids": []string{"missing"}})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = api.do(http.MethodPost, "/api/v1/estimates/mark-accepted", map[string]any{"ids": []string{"missing"}})
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, env = api.do(http.MethodPost, "/api/v1/invoices/mark-sent", map[string]any{"ids": []string{"missing"}})
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestAPI_ValidationAndSettings(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/api/v1/customers", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)

	code, _ = api.do(http.MethodPost, "/api/v1/customers/delete", map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodPatch, "/api/v1/settings", map[string]any{"invoicePrefix": "BILL"})
	require.Equal(t, http.StatusOK, code)
	settings := decodeData[struct {
		InvoicePrefix  string `json:"invoicePrefix"`
		EstimatePrefix string `json:"estimatePrefix"`
	}](t, env)
	assert.Equal(t, "BILL", settings.InvoicePrefix)
	assert.Equal(t, "EST", settings.EstimatePrefix)

	code, env = api.do(http.MethodPost, "/api/v1/customers", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, code)
	customer := decodeData[idView](t, env)

	code, env = api.do(http.MethodPost, "/api/v1/invoices", map[string]any{"customerId": customer.ID})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "BILL-1001", decodeData[documentView](t, env).Number)

	code, env = api.do(http.MethodGet, "/api/v1/system/info", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}
