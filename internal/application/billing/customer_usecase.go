package billing

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

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	tx    repository.TxRunner
	clock ports.Clock
	loc   *time.Location
}

// NewCustomerUseCase construye el caso de uso. loc nil = time.Local.
func NewCustomerUseCase(tx repository.TxRunner, clock ports.Clock, loc *time.Location) *CustomerUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &CustomerUseCase{tx: tx, clock: clock, loc: loc}
}

// Add valida y crea un cliente. El teléfono, si viene, debe ser único.
func (uc *CustomerUseCase) Add(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Required("name")
	}
	customer := &entity.Customer{
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		TaxID:     strings.TrimSpace(in.TaxID),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: uc.clock.Now(),
	}
	if in.Balance != nil {
		customer.Balance.Decimal = *in.Balance
		customer.Balance.Valid = true
	}
	err := uc.tx.Run(ctx, repository.ReadWriteScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		return repos.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, uc.loc), nil
}

// GetAll lista todos los clientes en orden de alta.
func (uc *CustomerUseCase) GetAll(ctx context.Context) ([]*dto.CustomerResponse, error) {
	var list []*entity.Customer
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		var err error
		list, err = repos.Customers().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c, uc.loc))
	}
	return out, nil
}

// GetByID obtiene un cliente o domain.ErrNotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	var c *entity.Customer
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		var err error
		c, err = repos.Customers().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c, uc.loc), nil
}

// Search filtra por nombre o id (subcadena, sin distinguir mayúsculas).
func (uc *CustomerUseCase) Search(ctx context.Context, query string) ([]*dto.CustomerResponse, error) {
	all, err := uc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, query, func(c *dto.CustomerResponse) (string, int64) { return c.Name, c.ID }), nil
}

func toCustomerResponse(c *entity.Customer, loc *time.Location) *dto.CustomerResponse {
	out := &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		TaxID:     c.TaxID,
		Address:   c.Address,
		CreatedAt: dto.FormatDateTime(c.CreatedAt, loc),
	}
	if c.Balance.Valid {
		b := c.Balance.Decimal
		out.Balance = &b
	}
	return out
}
