package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite limitada a un alcance.
// ReadWrite corre en la conexión única de escritura (BEGIN IMMEDIATE);
// ReadOnly corre en el pool de lectores.
type TxRunner struct {
	store *Store
	log   zerolog.Logger
}

// NewTxRunner construye el runner sobre un Store abierto.
func NewTxRunner(store *Store, log zerolog.Logger) *TxRunner {
	return &TxRunner{store: store, log: log}
}

// Run valida el alcance, inicia la transacción, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback. Un error de fn revierte todo lo escrito dentro de la tx.
func (r *TxRunner) Run(ctx context.Context, scope repository.Scope, fn func(repos repository.Repos) error) error {
	if err := r.checkScope(scope); err != nil {
		return err
	}

	db := r.store.reader
	if scope.Mode == repository.ReadWrite {
		db = r.store.writer
	}
	mode := scope.Mode.String()
	txID := uuid.NewString()
	log := r.log.With().Str("tx_id", txID).Str("mode", mode).Strs("collections", scope.Collections).Logger()

	start := time.Now()
	defer func() { transactionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds()) }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		transactionsTotal.WithLabelValues(mode, outcomeError).Inc()
		log.Warn().Err(err).Msg("begin transaction")
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()
	log.Debug().Msg("transacción iniciada")

	if err := fn(newTxRepos(tx, r.store.schema, scope)); err != nil {
		_ = tx.Rollback()
		transactionsTotal.WithLabelValues(mode, outcomeRollback).Inc()
		log.Debug().Err(err).Msg("transacción revertida")
		return err
	}
	if err := tx.Commit(); err != nil {
		transactionsTotal.WithLabelValues(mode, outcomeError).Inc()
		log.Warn().Err(err).Msg("commit transaction")
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrTransactionFailed, err)
	}
	transactionsTotal.WithLabelValues(mode, outcomeCommit).Inc()
	log.Debug().Dur("elapsed", time.Since(start)).Msg("transacción confirmada")
	return nil
}

// checkScope exige colecciones declaradas y disponibles en la versión abierta.
func (r *TxRunner) checkScope(scope repository.Scope) error {
	if len(scope.Collections) == 0 {
		return fmt.Errorf("%w: alcance sin colecciones", domain.ErrTransactionFailed)
	}
	for _, name := range scope.Collections {
		since, ok := r.store.schema.collectionSince(name)
		if !ok {
			return fmt.Errorf("%w: colección no declarada %q", domain.ErrTransactionFailed, name)
		}
		if since > r.store.version {
			return fmt.Errorf("%w: colección %q requiere esquema v%d (abierto v%d)",
				domain.ErrTransactionFailed, name, since, r.store.version)
		}
	}
	return nil
}

// txRepos implementa repository.Repos sobre una *sql.Tx.
type txRepos struct {
	customers *CustomerRepo
	products  *ProductRepo
	invoices  *InvoiceRepo
	ledger    *LedgerRepo
}

func newTxRepos(tx *sql.Tx, schema *Schema, scope repository.Scope) *txRepos {
	b := func(collection string) base {
		return base{q: tx, schema: schema, scope: &scope, collection: collection}
	}
	return &txRepos{
		customers: &CustomerRepo{base: b(repository.CollectionCustomers)},
		products:  &ProductRepo{base: b(repository.CollectionProducts)},
		invoices:  &InvoiceRepo{base: b(repository.CollectionInvoices)},
		ledger:    &LedgerRepo{base: b(repository.CollectionLedger)},
	}
}

func (t *txRepos) Customers() repository.CustomerRepository { return t.customers }
func (t *txRepos) Products() repository.ProductRepository   { return t.products }
func (t *txRepos) Invoices() repository.InvoiceRepository   { return t.invoices }
func (t *txRepos) Ledger() repository.LedgerRepository      { return t.ledger }

// base campos comunes de los repos. scope nil = sin restricción (uso fuera de TxRunner).
type base struct {
	q          Querier
	schema     *Schema
	scope      *repository.Scope
	collection string
}

func newBase(q Querier, collection string) base {
	return base{q: q, schema: DefaultSchema(), collection: collection}
}

func (b base) allow(write bool) error {
	if b.scope == nil {
		return nil
	}
	return b.scope.Allows(b.collection, write)
}
