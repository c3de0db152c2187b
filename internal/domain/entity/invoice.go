package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentBankTransfer = "bank-transfer"
	PaymentOther        = "other"
)

var hundred = decimal.NewFromInt(100)

// Invoice representa la cabecera de una factura con sus líneas.
// Los totales no se persisten: se derivan siempre de Items, Discount y TaxRate.
type Invoice struct {
	ID              int64
	Number          string
	Date            time.Time // fecha de emisión
	DueDate         time.Time
	CustomerID      int64
	Items           []InvoiceItem
	Discount        decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje, ej. 18 = 18%
	PaymentMethod   string
	ShippingAddress string // vacío = dirección del cliente
	CreatedAt       time.Time
}

// Totals montos derivados de una factura. Sin redondeo intermedio.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// Rounded devuelve los totales redondeados a 2 decimales (solo para presentación).
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:  t.Subtotal.Round(2),
		TaxAmount: t.TaxAmount.Round(2),
		Total:     t.Total.Round(2),
	}
}

// Subtotal suma precio × cantidad de cada línea.
func (inv *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.Amount())
	}
	return sum
}

// Totals calcula subtotal, impuesto y total (subtotal + impuesto − descuento).
func (inv *Invoice) Totals() Totals {
	subtotal := inv.Subtotal()
	tax := subtotal.Mul(inv.TaxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax).Sub(inv.Discount),
	}
}

// Quantity suma las cantidades de todas las líneas.
func (inv *Invoice) Quantity() int64 {
	var n int64
	for _, it := range inv.Items {
		n += it.Quantity
	}
	return n
}

// ShipTo devuelve la dirección de envío, usando la del cliente si no hay otra.
func (inv *Invoice) ShipTo(c *Customer) string {
	if strings.TrimSpace(inv.ShippingAddress) != "" {
		return inv.ShippingAddress
	}
	if c == nil {
		return ""
	}
	return c.Address
}

// ValidPaymentMethod indica si m es un medio de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentOther:
		return true
	}
	return false
}
