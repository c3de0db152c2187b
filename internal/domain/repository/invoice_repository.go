package repository

import (
	"context"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Create persiste cabecera y líneas; las lecturas devuelven la factura con sus líneas en orden.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
}
