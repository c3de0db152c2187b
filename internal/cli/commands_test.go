package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_AltaListadoYBusqueda(t *testing.T) {
	cfg := testConfig(t)

	var john dto.CustomerResponse
	runJSON(t, cfg, &john, "customers", "add", "--name", "John Doe", "--phone", "111")
	assert.Positive(t, john.ID)
	runJSON(t, cfg, nil, "customers", "add", "--name", "Jane Roe", "--phone", "222")

	var all []dto.CustomerResponse
	runJSON(t, cfg, &all, "customers", "list")
	require.Len(t, all, 2)
	assert.Equal(t, "John Doe", all[0].Name)

	var found []dto.CustomerResponse
	runJSON(t, cfg, &found, "customers", "search", "doe")
	require.Len(t, found, 1)
	assert.Equal(t, john.ID, found[0].ID)
}

func TestCustomers_TelefonoDuplicado(t *testing.T) {
	cfg := testConfig(t)
	runJSON(t, cfg, nil, "customers", "add", "--name", "A", "--phone", "555")

	_, err := run(t, cfg, "customers", "add", "--name", "B", "--phone", "555")
	require.Error(t, err)
	var uv *domain.UniquenessViolation
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "phone", uv.Index)
	assert.Equal(t, ExitFailure, ExitCode(err))

	var all []dto.CustomerResponse
	runJSON(t, cfg, &all, "customers", "list")
	assert.Len(t, all, 1)
}

func TestCustomers_SaldoInvalido(t *testing.T) {
	_, err := run(t, testConfig(t), "customers", "add", "--name", "A", "--balance", "abc")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "balance", ve.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_CrearYMostrar(t *testing.T) {
	cfg := testConfig(t)

	var p dto.ProductResponse
	runJSON(t, cfg, &p, "products", "add", "--name", "Cable 1.5mm", "--code", "W15", "--price", "10.00", "--stock", "50")
	assert.Equal(t, "wire", p.Category)
	assert.Equal(t, "meter", p.Unit)

	var c dto.CustomerResponse
	runJSON(t, cfg, &c, "customers", "add", "--name", "John Doe", "--address", "12 MG Road")

	var inv dto.InvoiceResponse
	runJSON(t, cfg, &inv, "invoices", "create",
		"--customer", fmt.Sprint(c.ID),
		"--item", fmt.Sprintf("%d:2", p.ID),
		"--tax-rate", "18",
		"--date", "2024-03-15")
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("20.00")), inv.Subtotal.String())
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("3.60")), inv.TaxAmount.String())
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("23.60")), inv.Total.String())
	assert.Equal(t, "12 MG Road", inv.ShippingAddress)

	// Texto: totales con dos decimales tras reabrir el almacén.
	out, err := run(t, cfg, "invoices", "show", fmt.Sprint(inv.ID))
	require.NoError(t, err)
	assert.Contains(t, out, inv.Number)
	assert.Contains(t, out, "Cable 1.5mm")
	assert.Contains(t, out, "20.00")
	assert.Contains(t, out, "3.60")
	assert.Contains(t, out, "23.60")

	var list []dto.InvoiceResponse
	runJSON(t, cfg, &list, "invoices", "list", "--search", inv.Number)
	require.Len(t, list, 1)
}

func TestInvoices_ProductoInexistente(t *testing.T) {
	cfg := testConfig(t)
	var c dto.CustomerResponse
	runJSON(t, cfg, &c, "customers", "add", "--name", "John Doe")

	_, err := run(t, cfg, "invoices", "create", "--customer", fmt.Sprint(c.ID), "--item", "99:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var list []dto.InvoiceResponse
	runJSON(t, cfg, &list, "invoices", "list")
	assert.Empty(t, list)
}

func TestInvoices_ShowNoEncontrada(t *testing.T) {
	_, err := run(t, testConfig(t), "invoices", "show", "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y resúmenes
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_Mensual(t *testing.T) {
	cfg := testConfig(t)
	runJSON(t, cfg, nil, "ledger", "add", "--name", "Venta", "--amount", "100.10", "--type", "credit", "--date", "2024-03-05")
	runJSON(t, cfg, nil, "ledger", "add", "--name", "Alquiler", "--amount", "40.05", "--date", "2024-03-10")
	runJSON(t, cfg, nil, "ledger", "add", "--name", "Otro mes", "--amount", "7", "--date", "2024-04-01")

	var sum dto.MonthlySummaryDTO
	runJSON(t, cfg, &sum, "summary", "monthly", "--year", "2024", "--month", "3")
	assert.True(t, sum.Income.Equal(decimal.RequireFromString("100.10")), sum.Income.String())
	assert.True(t, sum.Expense.Equal(decimal.RequireFromString("40.05")), sum.Expense.String())
	assert.Equal(t, 2, sum.Transactions)

	var found []dto.LedgerEntryResponse
	runJSON(t, cfg, &found, "ledger", "list", "--search", "alquiler")
	require.Len(t, found, 1)
	assert.Equal(t, "debit", found[0].Type)
}

func TestSummary_MensualSinMes(t *testing.T) {
	_, err := run(t, testConfig(t), "summary", "monthly", "--year", "2024")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "month", ve.Field)
}

func TestSummary_DiarioVacio(t *testing.T) {
	var sum dto.DailySummaryDTO
	runJSON(t, testConfig(t), &sum, "summary", "daily", "--date", "2024-03-15")
	assert.Equal(t, "2024-03-15", sum.Date)
	assert.True(t, sum.TotalSales.IsZero())
	assert.Zero(t, sum.InvoiceCount)
	assert.Zero(t, sum.NewCustomers)
	assert.Zero(t, sum.ProductsSold)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flags y salida
// ──────────────────────────────────────────────────────────────────────────────

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    dto.InvoiceItemRequest
		wantErr bool
	}{
		{name: "sin precio", in: "3:2", want: dto.InvoiceItemRequest{ProductID: 3, Quantity: 2}},
		{name: "con precio", in: "3:2:5.50", want: dto.InvoiceItemRequest{ProductID: 3, Quantity: 2, UnitPrice: decimalPtr("5.50")}},
		{name: "precio cero", in: "3:2:0", want: dto.InvoiceItemRequest{ProductID: 3, Quantity: 2, UnitPrice: decimalPtr("0")}},
		{name: "sin cantidad", in: "3", wantErr: true},
		{name: "producto no numérico", in: "x:2", wantErr: true},
		{name: "precio inválido", in: "3:2:abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItem("items[0]", tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ProductID, got.ProductID)
			assert.Equal(t, tt.want.Quantity, got.Quantity)
			if tt.want.UnitPrice == nil {
				assert.Nil(t, got.UnitPrice)
				return
			}
			require.NotNil(t, got.UnitPrice)
			assert.True(t, tt.want.UnitPrice.Equal(*got.UnitPrice))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(domain.Required("name")))
	assert.Equal(t, ExitFailure, ExitCode(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, ExitCommandError, ExitCode(domain.ErrSchemaUnavailable))
	assert.Equal(t, ExitCommandError, ExitCode(errors.New("otro")))
}

func TestOutputFormatter_Error(t *testing.T) {
	_, err := run(t, testConfig(t), "customers", "add")
	require.Error(t, err)

	text := new(bytes.Buffer)
	require.NoError(t, (&OutputFormatter{Format: "text", Writer: text}).Error(err))
	assert.Contains(t, text.String(), "Error [VALIDATION]")

	raw := new(bytes.Buffer)
	require.NoError(t, (&OutputFormatter{Format: "json", Writer: raw}).Error(err))
	var env envelope
	require.NoError(t, json.Unmarshal(raw.Bytes(), &env))
	assert.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "name", env.Error.Field)
}
