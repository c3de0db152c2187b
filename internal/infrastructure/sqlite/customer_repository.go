package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con db o tx).
type CustomerRepo struct {
	base
}

// NewCustomerRepository construye el adaptador. Pasar db o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{base: newBase(q, repository.CollectionCustomers)}
}

const customerColumns = `id, name, phone, tax_id, address, balance, created_at`

// Create persiste un nuevo cliente y asigna su ID.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if err := r.allow(true); err != nil {
		return err
	}
	query := `
		INSERT INTO customers (name, phone, tax_id, address, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		customer.Name, nullString(customer.Phone), customer.TaxID, customer.Address,
		customer.Balance, customer.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", r.schema.translateError(err, map[string]string{"phone": customer.Phone}))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("customer id: %w", r.schema.translateError(err, nil))
	}
	customer.ID = id
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", r.schema.translateError(err, nil))
	}
	return c, nil
}

// List lista todos los clientes en orden de inserción.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", r.schema.translateError(err, nil))
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", r.schema.translateError(err, nil))
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", r.schema.translateError(err, nil))
	}
	return list, nil
}

// Count número de clientes.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	if err := r.allow(false); err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", r.schema.translateError(err, nil))
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*entity.Customer, error) {
	var c entity.Customer
	var phone sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &phone, &c.TaxID, &c.Address, &c.Balance, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Phone = phone.String
	return &c, nil
}
