package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository.
type ProductRepo struct {
	base
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{base: newBase(q, repository.CollectionProducts)}
}

const productColumns = `id, name, code, category, price, hsn_code, unit, stock, created_at`

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := r.allow(true); err != nil {
		return err
	}
	query := `
		INSERT INTO products (name, code, category, price, hsn_code, unit, stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		p.Name, p.Code, p.Category, p.Price, p.HSNCode, p.Unit, p.Stock, p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", r.schema.translateError(err, map[string]string{"name": p.Name, "code": p.Code}))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", r.schema.translateError(err, nil))
	}
	p.ID = id
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	row := r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", r.schema.translateError(err, nil))
	}
	return p, nil
}

// List lista todos los productos en orden de inserción.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	if err := r.allow(false); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", r.schema.translateError(err, nil))
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", r.schema.translateError(err, nil))
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", r.schema.translateError(err, nil))
	}
	return list, nil
}

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Code, &p.Category, &p.Price, &p.HSNCode, &p.Unit, &p.Stock, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
