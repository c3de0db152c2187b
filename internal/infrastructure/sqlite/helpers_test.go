package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
)

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wirebiz.db")
}

// openTestStore abre un almacén en un directorio temporal y lo cierra al terminar.
func openTestStore(t *testing.T, path string, version int) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{Path: path, SchemaVersion: version, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newCustomer(name, phone string) *entity.Customer {
	return &entity.Customer{Name: name, Phone: phone, CreatedAt: testTime}
}

func newProduct(name, code string) *entity.Product {
	return &entity.Product{
		Name:      name,
		Code:      code,
		Category:  entity.CategoryWire,
		Price:     decimal.RequireFromString("10.00"),
		Unit:      entity.UnitMeter,
		CreatedAt: testTime,
	}
}

// verifyPragma comprueba el valor de un pragma en la conexión de escritura.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.writer.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if !strings.EqualFold(value, expected) {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
