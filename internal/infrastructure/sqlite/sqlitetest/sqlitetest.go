// Package sqlitetest abre almacenes temporales para tests de otras capas.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite"
)

// Path ruta de base de datos dentro de t.TempDir().
func Path(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wirebiz.db")
}

// Open abre (o reabre) el almacén en path con el esquema más reciente.
// El almacén se cierra al terminar el test.
func Open(t testing.TB, path string) (*sqlite.Store, *sqlite.TxRunner) {
	t.Helper()
	s, err := sqlite.Open(context.Background(), sqlite.Options{Path: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, sqlite.NewTxRunner(s, zerolog.Nop())
}

// NewRunner almacén nuevo en un directorio temporal.
func NewRunner(t testing.TB) *sqlite.TxRunner {
	t.Helper()
	_, r := Open(t, Path(t))
	return r
}
