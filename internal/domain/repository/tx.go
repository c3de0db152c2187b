package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/wirebiz/internal/domain"
)

// Nombres de colecciones declaradas en el esquema.
const (
	CollectionCustomers = "customers"
	CollectionProducts  = "products"
	CollectionInvoices  = "invoices"
	CollectionLedger    = "ledger_entries"
)

// Mode modo de una transacción.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "readwrite"
	}
	return "readonly"
}

// Scope colecciones concedidas a una transacción y su modo.
type Scope struct {
	Collections []string
	Mode        Mode
}

// ReadOnlyScope alcance de solo lectura sobre las colecciones dadas.
func ReadOnlyScope(collections ...string) Scope {
	return Scope{Collections: collections, Mode: ReadOnly}
}

// ReadWriteScope alcance de lectura/escritura sobre las colecciones dadas.
func ReadWriteScope(collections ...string) Scope {
	return Scope{Collections: collections, Mode: ReadWrite}
}

// Allows verifica que la colección esté concedida y, si write, que el modo sea ReadWrite.
func (s Scope) Allows(collection string, write bool) error {
	if !slices.Contains(s.Collections, collection) {
		return fmt.Errorf("%w: %s", domain.ErrOutOfScope, collection)
	}
	if write && s.Mode != ReadWrite {
		return fmt.Errorf("%w: escritura en %s dentro de transacción de solo lectura", domain.ErrOutOfScope, collection)
	}
	return nil
}

// Repos repositorios atados a una transacción en curso.
type Repos interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Invoices() InvoiceRepository
	Ledger() LedgerRepository
}

// TxRunner ejecuta fn dentro de una transacción atómica limitada a scope.
// Si fn retorna error la transacción completa se revierte.
type TxRunner interface {
	Run(ctx context.Context, scope Scope, fn func(repos Repos) error) error
}
