package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del negocio.
// Phone es único cuando está presente; vacío significa "sin teléfono".
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	TaxID     string // GSTIN
	Address   string
	Balance   decimal.NullDecimal // saldo corriente opcional
	CreatedAt time.Time
}
