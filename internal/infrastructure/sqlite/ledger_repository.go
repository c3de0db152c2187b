package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository.
type LedgerRepo struct {
	base
}

// NewLedgerRepository construye el adaptador. Pasar db o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{base: newBase(q, repository.CollectionLedger)}
}

// Create persiste un movimiento y asigna su ID.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	if err := r.allow(true); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO ledger_entries (name, amount, type, details, date)
		VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Amount, e.Type, e.Details, e.Date.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", r.schema.translateError(err, nil))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("ledger entry id: %w", r.schema.translateError(err, nil))
	}
	e.ID = id
	return nil
}

// List lista todos los movimientos en orden de inserción.
func (r *LedgerRepo) List(ctx context.Context) ([]*entity.LedgerEntry, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, amount, type, details, date FROM ledger_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", r.schema.translateError(err, nil))
	}
	defer rows.Close()
	list := make([]*entity.LedgerEntry, 0)
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Type, &e.Details, &e.Date); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", r.schema.translateError(err, nil))
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", r.schema.translateError(err, nil))
	}
	return list, nil
}
