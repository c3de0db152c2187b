package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string           `json:"name"`
	Phone   string           `json:"phone,omitempty"`
	TaxID   string           `json:"tax_id,omitempty"` // GSTIN
	Address string           `json:"address,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	TaxID     string           `json:"tax_id,omitempty"`
	Address   string           `json:"address,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Number vacío genera uno; Date vacío = ahora; DueDate vacío = Date.
type CreateInvoiceRequest struct {
	Number          string               `json:"number,omitempty"`
	Date            string               `json:"date,omitempty"`
	DueDate         string               `json:"due_date,omitempty"`
	CustomerID      int64                `json:"customer_id"`
	Items           []InvoiceItemRequest `json:"items"`
	Discount        decimal.Decimal      `json:"discount"`
	TaxRate         decimal.Decimal      `json:"tax_rate"` // porcentaje
	PaymentMethod   string               `json:"payment_method,omitempty"`
	ShippingAddress string               `json:"shipping_address,omitempty"`
}

// InvoiceItemRequest línea de factura. UnitPrice nil = precio vigente del
// producto; un cero explícito se factura en cero.
type InvoiceItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura con líneas y totales derivados (redondeados a 2 decimales).
type InvoiceResponse struct {
	ID              int64                 `json:"id"`
	Number          string                `json:"number"`
	Date            string                `json:"date"`
	DueDate         string                `json:"due_date"`
	CustomerID      int64                 `json:"customer_id"`
	CustomerName    string                `json:"customer_name,omitempty"`
	PaymentMethod   string                `json:"payment_method"`
	ShippingAddress string                `json:"shipping_address,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	Discount        decimal.Decimal       `json:"discount"`
	TaxRate         decimal.Decimal       `json:"tax_rate"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	Total           decimal.Decimal       `json:"total"`
	CreatedAt       string                `json:"created_at"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	HSNCode   string          `json:"hsn_code,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}
