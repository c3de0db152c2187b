package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (cabecera + invoice_items).
type InvoiceRepo struct {
	base
}

// NewInvoiceRepository construye el adaptador. Pasar db o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{base: newBase(q, repository.CollectionInvoices)}
}

const invoiceColumns = `id, number, date, due_date, customer_id, discount, tax_rate, payment_method, shipping_address, created_at`

// Create persiste la cabecera y sus líneas. Debe ejecutarse dentro de una tx
// para que cabecera y líneas sean atómicas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if err := r.allow(true); err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (number, date, due_date, customer_id, discount, tax_rate, payment_method, shipping_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		inv.Number, inv.Date.UTC(), inv.DueDate.UTC(), inv.CustomerID, inv.Discount, inv.TaxRate,
		inv.PaymentMethod, inv.ShippingAddress, inv.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", r.schema.translateError(err, map[string]string{"number": inv.Number}))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("invoice id: %w", r.schema.translateError(err, nil))
	}

	itemQuery := `
		INSERT INTO invoice_items (invoice_id, position, product_id, name, hsn_code, price, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, it := range inv.Items {
		if _, err := r.q.ExecContext(ctx, itemQuery, id, i, it.ProductID, it.Name, it.HSNCode, it.Price, it.Quantity); err != nil {
			return fmt.Errorf("insert invoice item %d: %w", i, r.schema.translateError(err, nil))
		}
	}
	inv.ID = id
	return nil
}

// GetByID obtiene una factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", r.schema.translateError(err, nil))
	}
	items, err := r.items(ctx, `WHERE invoice_id = ?`, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]
	return inv, nil
}

// List lista todas las facturas con sus líneas en orden de inserción.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", r.schema.translateError(err, nil))
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", r.schema.translateError(err, nil))
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", r.schema.translateError(err, nil))
	}
	rows.Close()

	items, err := r.items(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		inv.Items = items[inv.ID]
	}
	return list, nil
}

// items carga líneas agrupadas por factura, en su orden original.
func (r *InvoiceRepo) items(ctx context.Context, where string, args ...any) (map[int64][]entity.InvoiceItem, error) {
	query := `SELECT invoice_id, product_id, name, hsn_code, price, quantity FROM invoice_items ` +
		where + ` ORDER BY invoice_id, position`
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", r.schema.translateError(err, nil))
	}
	defer rows.Close()
	out := make(map[int64][]entity.InvoiceItem)
	for rows.Next() {
		var invoiceID int64
		var it entity.InvoiceItem
		if err := rows.Scan(&invoiceID, &it.ProductID, &it.Name, &it.HSNCode, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", r.schema.translateError(err, nil))
		}
		out[invoiceID] = append(out[invoiceID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", r.schema.translateError(err, nil))
	}
	return out, nil
}

func scanInvoice(s scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := s.Scan(&inv.ID, &inv.Number, &inv.Date, &inv.DueDate, &inv.CustomerID, &inv.Discount, &inv.TaxRate,
		&inv.PaymentMethod, &inv.ShippingAddress, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
