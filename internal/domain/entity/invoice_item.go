package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de factura.
// Name, HSNCode y Price son una foto del producto al momento de facturar:
// cambios posteriores al producto no alteran facturas ya emitidas.
type InvoiceItem struct {
	ProductID int64
	Name      string
	HSNCode   string
	Price     decimal.Decimal
	Quantity  int64
}

// Amount precio × cantidad de la línea.
func (it InvoiceItem) Amount() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(it.Quantity))
}
