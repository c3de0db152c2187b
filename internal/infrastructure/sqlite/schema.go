package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

// Versiones del esquema:
// 1 - customers y products
// 2 - invoices e invoice_items
// 3 - ledger_entries e índice gstin en customers
const LatestSchemaVersion = 3

// Collection conjunto de registros de un tipo. Tables son los CREATE TABLE
// (idempotentes) que la componen; Since es la versión que la introdujo.
type Collection struct {
	Name   string
	Since  int
	Tables []string
}

// Index índice secundario. Name es el nombre lógico que reportan los errores
// (ej. "phone"); Table por defecto es Collection.
type Index struct {
	Name       string
	Collection string
	Table      string
	Columns    []string
	Unique     bool
	Since      int
}

func (ix Index) table() string {
	if ix.Table != "" {
		return ix.Table
	}
	return ix.Collection
}

func (ix Index) sqlName() string {
	return "idx_" + ix.table() + "_" + strings.ToLower(ix.Name)
}

func (ix Index) ddl() string {
	unique := ""
	if ix.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s(%s)",
		unique, ix.sqlName(), ix.table(), strings.Join(ix.Columns, ", "))
}

// Schema declaración completa de colecciones e índices.
type Schema struct {
	Collections []Collection
	Indexes     []Index
}

// Latest versión más alta declarada.
func (s *Schema) Latest() int {
	v := 0
	for _, c := range s.Collections {
		v = max(v, c.Since)
	}
	for _, ix := range s.Indexes {
		v = max(v, ix.Since)
	}
	return v
}

// HasCollection indica si la colección está declarada.
func (s *Schema) HasCollection(name string) bool {
	for _, c := range s.Collections {
		if c.Name == name {
			return true
		}
	}
	return false
}

// collectionSince versión que introdujo la colección.
func (s *Schema) collectionSince(name string) (int, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c.Since, true
		}
	}
	return 0, false
}

// uniqueIndexFor busca el índice único declarado sobre table(columns).
func (s *Schema) uniqueIndexFor(table string, columns []string) (Index, bool) {
	for _, ix := range s.Indexes {
		if ix.Unique && ix.table() == table && slices.Equal(ix.Columns, columns) {
			return ix, true
		}
	}
	return Index{}, false
}

// DefaultSchema esquema del negocio.
func DefaultSchema() *Schema {
	return &Schema{
		Collections: []Collection{
			{Name: repository.CollectionCustomers, Since: 1, Tables: []string{`
				CREATE TABLE IF NOT EXISTS customers (
					id         INTEGER PRIMARY KEY AUTOINCREMENT,
					name       TEXT NOT NULL,
					phone      TEXT,
					tax_id     TEXT NOT NULL DEFAULT '',
					address    TEXT NOT NULL DEFAULT '',
					balance    TEXT,
					created_at DATETIME NOT NULL
				)`}},
			{Name: repository.CollectionProducts, Since: 1, Tables: []string{`
				CREATE TABLE IF NOT EXISTS products (
					id         INTEGER PRIMARY KEY AUTOINCREMENT,
					name       TEXT NOT NULL,
					code       TEXT NOT NULL,
					category   TEXT NOT NULL,
					price      TEXT NOT NULL,
					hsn_code   TEXT NOT NULL DEFAULT '',
					unit       TEXT NOT NULL,
					stock      INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
					created_at DATETIME NOT NULL
				)`}},
			{Name: repository.CollectionInvoices, Since: 2, Tables: []string{`
				CREATE TABLE IF NOT EXISTS invoices (
					id               INTEGER PRIMARY KEY AUTOINCREMENT,
					number           TEXT NOT NULL,
					date             DATETIME NOT NULL,
					due_date         DATETIME NOT NULL,
					customer_id      INTEGER NOT NULL REFERENCES customers(id),
					discount         TEXT NOT NULL,
					tax_rate         TEXT NOT NULL,
					payment_method   TEXT NOT NULL,
					shipping_address TEXT NOT NULL DEFAULT '',
					created_at       DATETIME NOT NULL
				)`, `
				CREATE TABLE IF NOT EXISTS invoice_items (
					id         INTEGER PRIMARY KEY AUTOINCREMENT,
					invoice_id INTEGER NOT NULL REFERENCES invoices(id),
					position   INTEGER NOT NULL,
					product_id INTEGER NOT NULL REFERENCES products(id),
					name       TEXT NOT NULL,
					hsn_code   TEXT NOT NULL DEFAULT '',
					price      TEXT NOT NULL,
					quantity   INTEGER NOT NULL CHECK (quantity > 0)
				)`}},
			{Name: repository.CollectionLedger, Since: 3, Tables: []string{`
				CREATE TABLE IF NOT EXISTS ledger_entries (
					id      INTEGER PRIMARY KEY AUTOINCREMENT,
					name    TEXT NOT NULL,
					amount  TEXT NOT NULL,
					type    TEXT NOT NULL CHECK (type IN ('credit', 'debit')),
					details TEXT NOT NULL DEFAULT '',
					date    DATETIME NOT NULL
				)`}},
		},
		Indexes: []Index{
			{Name: "name", Collection: repository.CollectionCustomers, Columns: []string{"name"}, Since: 1},
			{Name: "phone", Collection: repository.CollectionCustomers, Columns: []string{"phone"}, Unique: true, Since: 1},
			{Name: "name", Collection: repository.CollectionProducts, Columns: []string{"name"}, Unique: true, Since: 1},
			{Name: "code", Collection: repository.CollectionProducts, Columns: []string{"code"}, Unique: true, Since: 1},
			{Name: "category", Collection: repository.CollectionProducts, Columns: []string{"category"}, Since: 1},
			{Name: "number", Collection: repository.CollectionInvoices, Columns: []string{"number"}, Unique: true, Since: 2},
			{Name: "date", Collection: repository.CollectionInvoices, Columns: []string{"date"}, Since: 2},
			{Name: "customer", Collection: repository.CollectionInvoices, Columns: []string{"customer_id"}, Since: 2},
			{Name: "items", Collection: repository.CollectionInvoices, Table: "invoice_items", Columns: []string{"invoice_id"}, Since: 2},
			{Name: "gstin", Collection: repository.CollectionCustomers, Columns: []string{"tax_id"}, Since: 3},
			{Name: "date", Collection: repository.CollectionLedger, Columns: []string{"date"}, Since: 3},
		},
	}
}

// storedVersion lee PRAGMA user_version.
func storedVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// migrate lleva el esquema de la versión almacenada a expected dentro de una sola
// transacción. Solo agrega colecciones e índices; nunca toca filas existentes.
// Devuelve la versión desde la que se migró.
func migrate(ctx context.Context, db *sql.DB, schema *Schema, expected int, log zerolog.Logger) (int, error) {
	latest := schema.Latest()
	if expected < 1 || expected > latest {
		return 0, &domain.MigrationConflict{Reason: fmt.Sprintf("versión esperada %d fuera de rango (1..%d)", expected, latest)}
	}

	stored, err := storedVersion(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrSchemaUnavailable, err)
	}
	if stored > expected {
		return stored, &domain.MigrationConflict{Reason: fmt.Sprintf("versión almacenada %d mayor que la esperada %d", stored, expected)}
	}
	if stored == expected {
		return stored, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stored, fmt.Errorf("%w: begin migration: %w", domain.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	pending := func(since int) bool { return since > stored && since <= expected }

	for _, c := range schema.Collections {
		if !pending(c.Since) {
			continue
		}
		for _, ddl := range c.Tables {
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return stored, fmt.Errorf("crear colección %s: %w", c.Name, err)
			}
		}
		log.Info().Str("collection", c.Name).Int("since", c.Since).Msg("colección creada")
	}

	for _, ix := range schema.Indexes {
		if !pending(ix.Since) {
			continue
		}
		if _, err := tx.ExecContext(ctx, ix.ddl()); err != nil {
			if ix.Unique && isConstraintError(err) {
				return stored, &domain.MigrationConflict{
					Index:  ix.Name,
					Reason: fmt.Sprintf("los datos existentes de %s violan la unicidad", ix.table()),
				}
			}
			return stored, fmt.Errorf("crear índice %s: %w", ix.sqlName(), err)
		}
	}

	// user_version no admite parámetros enlazados.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", expected)); err != nil {
		return stored, fmt.Errorf("set user_version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("%w: commit migration: %w", domain.ErrTransactionFailed, err)
	}

	migrationsTotal.Inc()
	log.Info().Int("from", stored).Int("to", expected).Msg("esquema migrado")
	return stored, nil
}
