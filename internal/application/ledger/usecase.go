// Package ledger registra movimientos simples de ingresos y egresos
// (la variante "registros de clientes" del negocio).
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/search"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

// UseCase alta, listado y búsqueda de movimientos.
type UseCase struct {
	tx    repository.TxRunner
	clock ports.Clock
	loc   *time.Location
}

// NewUseCase construye el caso de uso. loc nil = time.Local.
func NewUseCase(tx repository.TxRunner, clock ports.Clock, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{tx: tx, clock: clock, loc: loc}
}

// Add registra un movimiento. Type vacío = debit; Date vacío = ahora.
func (uc *UseCase) Add(ctx context.Context, in dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Required("name")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	kind := strings.ToLower(strings.TrimSpace(in.Type))
	if kind == "" {
		kind = entity.EntryDebit
	}
	if !entity.ValidEntryType(kind) {
		return nil, domain.Invalid("type", "use credit o debit")
	}
	date, err := dto.ParseDate("date", in.Date, uc.loc)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = uc.clock.Now()
	}

	entry := &entity.LedgerEntry{
		Name:    name,
		Amount:  in.Amount,
		Type:    kind,
		Details: strings.TrimSpace(in.Details),
		Date:    date,
	}
	err = uc.tx.Run(ctx, repository.ReadWriteScope(repository.CollectionLedger), func(repos repository.Repos) error {
		return repos.Ledger().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(entry, uc.loc), nil
}

// GetAll lista todos los movimientos.
func (uc *UseCase) GetAll(ctx context.Context) ([]*dto.LedgerEntryResponse, error) {
	var list []*entity.LedgerEntry
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionLedger), func(repos repository.Repos) error {
		var err error
		list, err = repos.Ledger().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toResponse(e, uc.loc))
	}
	return out, nil
}

// Search filtra por nombre o id.
func (uc *UseCase) Search(ctx context.Context, query string) ([]*dto.LedgerEntryResponse, error) {
	all, err := uc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, query, func(e *dto.LedgerEntryResponse) (string, int64) { return e.Name, e.ID }), nil
}

func toResponse(e *entity.LedgerEntry, loc *time.Location) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:      e.ID,
		Name:    e.Name,
		Amount:  e.Amount,
		Type:    e.Type,
		Details: e.Details,
		Date:    dto.FormatDateTime(e.Date, loc),
	}
}
