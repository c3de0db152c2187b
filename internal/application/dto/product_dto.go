package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// Category vacío = wire; Unit vacío = meter.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	HSNCode  string          `json:"hsn_code,omitempty"`
	Unit     string          `json:"unit,omitempty"`
	Stock    int64           `json:"stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	HSNCode   string          `json:"hsn_code,omitempty"`
	Unit      string          `json:"unit"`
	Stock     int64           `json:"stock"`
	CreatedAt string          `json:"created_at"`
}
