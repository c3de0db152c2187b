package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	EntryCredit = "credit" // ingreso
	EntryDebit  = "debit"  // egreso
)

// LedgerEntry movimiento simple (no es contabilidad de partida doble).
// Se usa para los resúmenes mensuales de ingresos y egresos.
type LedgerEntry struct {
	ID      int64
	Name    string
	Amount  decimal.Decimal
	Type    string
	Details string
	Date    time.Time
}

// ValidEntryType indica si t es credit o debit.
func ValidEntryType(t string) bool {
	return t == EntryCredit || t == EntryDebit
}
