package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/search"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Nombre y código son únicos.
type ProductUseCase struct {
	tx    repository.TxRunner
	clock ports.Clock
	loc   *time.Location
}

// NewProductUseCase construye el caso de uso. loc nil = time.Local.
func NewProductUseCase(tx repository.TxRunner, clock ports.Clock, loc *time.Location) *ProductUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ProductUseCase{tx: tx, clock: clock, loc: loc}
}

// Add valida, aplica valores por defecto (wire, meter) y crea el producto.
func (uc *ProductUseCase) Add(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.newProduct(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, repository.ReadWriteScope(repository.CollectionProducts), func(repos repository.Repos) error {
		return repos.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, uc.loc), nil
}

func (uc *ProductUseCase) newProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Required("name")
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.Required("code")
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = entity.CategoryWire
	}
	if !entity.ValidCategory(category) {
		return nil, domain.Invalid("category", "categoría desconocida")
	}
	unit := strings.ToLower(strings.TrimSpace(in.Unit))
	if unit == "" {
		unit = entity.UnitMeter
	}
	if !entity.ValidUnit(unit) {
		return nil, domain.Invalid("unit", "unidad desconocida")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price", "no puede ser negativo")
	}
	if in.Stock < 0 {
		return nil, domain.Invalid("stock", "no puede ser negativo")
	}
	return &entity.Product{
		Name:      name,
		Code:      code,
		Category:  category,
		Price:     in.Price,
		HSNCode:   strings.TrimSpace(in.HSNCode),
		Unit:      unit,
		Stock:     in.Stock,
		CreatedAt: uc.clock.Now(),
	}, nil
}

// GetAll lista todos los productos.
func (uc *ProductUseCase) GetAll(ctx context.Context) ([]*dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionProducts), func(repos repository.Repos) error {
		var err error
		list, err = repos.Products().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, uc.loc))
	}
	return out, nil
}

// GetByID obtiene un producto o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var p *entity.Product
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionProducts), func(repos repository.Repos) error {
		var err error
		p, err = repos.Products().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p, uc.loc), nil
}

// Search filtra por nombre o id.
func (uc *ProductUseCase) Search(ctx context.Context, query string) ([]*dto.ProductResponse, error) {
	all, err := uc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, query, func(p *dto.ProductResponse) (string, int64) { return p.Name, p.ID }), nil
}

func toProductResponse(p *entity.Product, loc *time.Location) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Category:  p.Category,
		Price:     p.Price,
		HSNCode:   p.HSNCode,
		Unit:      p.Unit,
		Stock:     p.Stock,
		CreatedAt: dto.FormatDateTime(p.CreatedAt, loc),
	}
}
