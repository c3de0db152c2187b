package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wirebiz/internal/application/analytics"
	"github.com/jhoicas/wirebiz/internal/application/billing"
	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ledger"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
	apphttp "github.com/jhoicas/wirebiz/internal/interfaces/http"
	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite/sqlitetest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre un almacén temporal.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	runner := sqlitetest.NewRunner(t)
	clock := ports.ClockFunc(func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) })
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: billing.NewCustomerUseCase(runner, clock, time.UTC),
		ProductUC:  usecase.NewProductUseCase(runner, clock, time.UTC),
		InvoiceUC:  billing.NewInvoiceUseCase(runner, clock, time.UTC),
		LedgerUC:   ledger.NewUseCase(runner, clock, time.UTC),
		SummaryUC:  analytics.NewSummaryUseCase(runner, clock, time.UTC),
		Location:   time.UTC,
	})
	return app
}

// doJSON lanza la petición y decodifica la respuesta en out (si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_AltaYDuplicado(t *testing.T) {
	app := buildTestApp(t)

	var created dto.CustomerResponse
	status := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "John Doe", "phone": "555"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Positive(t, created.ID)

	var errBody dto.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Other", "phone": "555"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errBody.Code)
	assert.Equal(t, "phone", errBody.Field)

	var list []dto.CustomerResponse
	status = doJSON(t, app, http.MethodGet, "/api/customers", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)
}

func TestCustomers_Validacion(t *testing.T) {
	app := buildTestApp(t)

	var errBody dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"phone": "1"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "name", errBody.Field)
}

func TestCustomers_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomers_BusquedaYConsulta(t *testing.T) {
	app := buildTestApp(t)
	for _, name := range []string{"John Doe", "Jane Roe"} {
		require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": name}, nil))
	}

	var found []dto.CustomerResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/customers/search?q=doe", nil, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "John Doe", found[0].Name)

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/customers/99", nil, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/api/customers/abc", nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas y resúmenes
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)

	var customer dto.CustomerResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "John Doe"}, &customer))
	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/products",
		map[string]any{"name": "THHN 12", "code": "W-12", "price": "10.00"}, &product))

	var errBody dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/invoices", map[string]any{
		"customer_id": customer.ID,
		"items":       []map[string]any{{"product_id": product.ID + 50, "quantity": 1}},
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "items[0].product_id", errBody.Field)

	var invoice dto.InvoiceResponse
	status = doJSON(t, app, http.MethodPost, "/api/invoices", map[string]any{
		"customer_id": customer.ID,
		"items":       []map[string]any{{"product_id": product.ID, "quantity": 2}},
		"tax_rate":    18,
	}, &invoice)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "23.60", invoice.Total.StringFixed(2))

	var fetched dto.InvoiceResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/invoices/"+strconv.FormatInt(invoice.ID, 10), nil, &fetched))
	assert.Equal(t, invoice.Number, fetched.Number)

	var daily dto.DailySummaryDTO
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/summary/daily?date=2024-03-15", nil, &daily))
	assert.Equal(t, 1, daily.InvoiceCount)
	assert.Equal(t, "23.60", daily.TotalSales.StringFixed(2))
	assert.Equal(t, int64(2), daily.ProductsSold)
}

func TestSummary_Mensual(t *testing.T) {
	app := buildTestApp(t)
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/ledger",
		map[string]any{"name": "Sale", "amount": "12.50", "type": "credit"}, nil))

	var m dto.MonthlySummaryDTO
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/summary/monthly", nil, &m))
	assert.Equal(t, 3, m.Month)
	assert.Equal(t, "12.50", m.Income.StringFixed(2))
	assert.Equal(t, 1, m.Transactions)

	var empty dto.MonthlySummaryDTO
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/summary/monthly?year=2023&month=1", nil, &empty))
	assert.Zero(t, empty.Transactions)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/api/summary/monthly?year=2024&month=13", nil, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/api/summary/daily?date=tomorrow", nil, nil))
}
