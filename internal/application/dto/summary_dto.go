package dto

import "github.com/shopspring/decimal"

// MonthlySummaryDTO ingresos, egresos y número de movimientos del mes.
type MonthlySummaryDTO struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Transactions int             `json:"transactions"`
}

// DailySummaryDTO ventas del día.
type DailySummaryDTO struct {
	Date         string          `json:"date"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	InvoiceCount int             `json:"invoice_count"`
	NewCustomers int             `json:"new_customers"`
	ProductsSold int64           `json:"products_sold"`
}
