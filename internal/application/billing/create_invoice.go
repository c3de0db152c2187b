package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/search"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

// InvoiceUseCase crea y consulta facturas.
type InvoiceUseCase struct {
	tx    repository.TxRunner
	clock ports.Clock
	loc   *time.Location
}

// NewInvoiceUseCase construye el caso de uso. loc nil = time.Local.
func NewInvoiceUseCase(tx repository.TxRunner, clock ports.Clock, loc *time.Location) *InvoiceUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &InvoiceUseCase{tx: tx, clock: clock, loc: loc}
}

// Create valida el borrador y, en una sola transacción sobre clientes, productos y
// facturas, resuelve cliente y productos, toma la foto de precio/nombre/HSN de cada
// línea y guarda cabecera y líneas. Cualquier error deja el almacén intacto.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := uc.clock.Now()
	inv, err := uc.draft(in, now)
	if err != nil {
		return nil, err
	}

	scope := repository.ReadWriteScope(repository.CollectionCustomers, repository.CollectionProducts, repository.CollectionInvoices)
	var customer *entity.Customer
	err = uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		var err error
		customer, err = repos.Customers().GetByID(ctx, inv.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.Invalid("customer_id", "cliente inexistente")
		}
		for i := range inv.Items {
			item := &inv.Items[i]
			product, err := repos.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.Invalid(fmt.Sprintf("items[%d].product_id", i), "producto inexistente")
			}
			// Sin precio explícito: precio vigente del producto.
			if in.Items[i].UnitPrice == nil {
				item.Price = product.Price
			}
			item.Name = product.Name
			item.HSNCode = product.HSNCode
		}
		return repos.Invoices().Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customer, uc.loc), nil
}

// draft valida la entrada y construye la factura sin tocar el almacén.
func (uc *InvoiceUseCase) draft(in dto.CreateInvoiceRequest, now time.Time) (*entity.Invoice, error) {
	if in.CustomerID <= 0 {
		return nil, domain.Required("customer_id")
	}
	if len(in.Items) == 0 {
		return nil, domain.Required("items")
	}
	if in.Discount.IsNegative() {
		return nil, domain.Invalid("discount", "no puede ser negativo")
	}
	if in.TaxRate.IsNegative() {
		return nil, domain.Invalid("tax_rate", "no puede ser negativo")
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.Invalid("payment_method", "medio de pago desconocido")
	}

	date, err := dto.ParseDate("date", in.Date, uc.loc)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = now
	}
	due, err := dto.ParseDate("due_date", in.DueDate, uc.loc)
	if err != nil {
		return nil, err
	}
	if due.IsZero() {
		due = date
	}
	if due.Before(date) {
		return nil, domain.Invalid("due_date", "anterior a la fecha de emisión")
	}

	number := strings.TrimSpace(in.Number)
	if number == "" {
		number = "INV-" + strings.ToUpper(uuid.NewString()[:8])
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return nil, domain.Required(fmt.Sprintf("items[%d].product_id", i))
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		item := entity.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity}
		if it.UnitPrice != nil {
			if it.UnitPrice.IsNegative() {
				return nil, domain.Invalid(fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
			}
			item.Price = *it.UnitPrice
		}
		items = append(items, item)
	}

	return &entity.Invoice{
		Number:          number,
		Date:            date,
		DueDate:         due,
		CustomerID:      in.CustomerID,
		Items:           items,
		Discount:        in.Discount,
		TaxRate:         in.TaxRate,
		PaymentMethod:   method,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		CreatedAt:       now,
	}, nil
}

// GetAll lista todas las facturas con totales.
func (uc *InvoiceUseCase) GetAll(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	var (
		invoices  []*entity.Invoice
		customers []*entity.Customer
	)
	scope := repository.ReadOnlyScope(repository.CollectionCustomers, repository.CollectionInvoices)
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		var err error
		if invoices, err = repos.Invoices().List(ctx); err != nil {
			return err
		}
		customers, err = repos.Customers().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, byID[inv.CustomerID], uc.loc))
	}
	return out, nil
}

// GetByID obtiene una factura o domain.ErrNotFound.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	var (
		inv      *entity.Invoice
		customer *entity.Customer
	)
	scope := repository.ReadOnlyScope(repository.CollectionCustomers, repository.CollectionInvoices)
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		var err error
		inv, err = repos.Invoices().GetByID(ctx, id)
		if err != nil || inv == nil {
			return err
		}
		customer, err = repos.Customers().GetByID(ctx, inv.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv, customer, uc.loc), nil
}

// Search filtra por número de factura o id.
func (uc *InvoiceUseCase) Search(ctx context.Context, query string) ([]*dto.InvoiceResponse, error) {
	all, err := uc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, query, func(inv *dto.InvoiceResponse) (string, int64) { return inv.Number, inv.ID }), nil
}

func toInvoiceResponse(inv *entity.Invoice, customer *entity.Customer, loc *time.Location) *dto.InvoiceResponse {
	totals := inv.Totals().Rounded()
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Date:            dto.FormatDateTime(inv.Date, loc),
		DueDate:         dto.FormatDateTime(inv.DueDate, loc),
		CustomerID:      inv.CustomerID,
		PaymentMethod:   inv.PaymentMethod,
		ShippingAddress: inv.ShipTo(customer),
		Items:           make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		Discount:        inv.Discount,
		TaxRate:         inv.TaxRate,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		CreatedAt:       dto.FormatDateTime(inv.CreatedAt, loc),
	}
	if customer != nil {
		out.CustomerName = customer.Name
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			HSNCode:   it.HSNCode,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Amount:    it.Amount().Round(2),
		})
	}
	return out
}

