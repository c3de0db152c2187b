package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/wirebiz/internal/domain"
)

// Querier interfaz común de *sql.DB y *sql.Tx para que los repos funcionen con ambos.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// isConstraintError verifica si err es una violación de restricción de SQLite.
func isConstraintError(err error) bool {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// isUniqueViolation verifica si err es una violación de UNIQUE (o de PRIMARY KEY).
func isUniqueViolation(err error) bool {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// uniqueColumns extrae tabla y columnas de "UNIQUE constraint failed: customers.phone".
func uniqueColumns(err error) (table string, columns []string) {
	msg := err.Error()
	i := strings.LastIndex(msg, ": ")
	if i < 0 {
		return "", nil
	}
	for _, part := range strings.Split(msg[i+2:], ", ") {
		tbl, col, ok := strings.Cut(strings.TrimSpace(part), ".")
		if !ok {
			return "", nil
		}
		table = tbl
		columns = append(columns, col)
	}
	return table, columns
}

// translateError convierte errores de SQLite en errores de dominio.
// values mapea columna -> valor intentado, para reportarlo en UniquenessViolation.
func (s *Schema) translateError(err error, values map[string]string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		table, columns := uniqueColumns(err)
		v := &domain.UniquenessViolation{Collection: table, Index: strings.Join(columns, ",")}
		if ix, ok := s.uniqueIndexFor(table, columns); ok {
			v.Collection = ix.Collection
			v.Index = ix.Name
		}
		if len(columns) == 1 {
			v.Value = values[columns[0]]
		}
		return v
	}
	if errors.Is(err, domain.ErrOutOfScope) || errors.Is(err, domain.ErrTransactionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}

// nullString guarda NULL en lugar de "" (un índice único admite varios NULL).
func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
