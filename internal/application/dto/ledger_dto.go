package dto

import "github.com/shopspring/decimal"

// CreateLedgerEntryRequest body para POST /api/ledger. Type vacío = debit.
type CreateLedgerEntryRequest struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Type    string          `json:"type,omitempty"`
	Details string          `json:"details,omitempty"`
	Date    string          `json:"date,omitempty"`
}

// LedgerEntryResponse movimiento en respuestas.
type LedgerEntryResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Type    string          `json:"type"`
	Details string          `json:"details,omitempty"`
	Date    string          `json:"date"`
}
