package repository

import (
	"context"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
)

// LedgerRepository puerto de persistencia para movimientos de ingresos/egresos.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	List(ctx context.Context) ([]*entity.LedgerEntry, error)
}
