package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/domain"
)

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, domain.Invalid(field, "número decimal inválido")
	}
	return d, nil
}

// parseItem interpreta "producto:cantidad[:precio]".
func parseItem(field, value string) (dto.InvoiceItemRequest, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return dto.InvoiceItemRequest{}, domain.Invalid(field, "use producto:cantidad[:precio]")
	}
	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return dto.InvoiceItemRequest{}, domain.Invalid(field, "id de producto inválido")
	}
	qty, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return dto.InvoiceItemRequest{}, domain.Invalid(field, "cantidad inválida")
	}
	item := dto.InvoiceItemRequest{ProductID: productID, Quantity: qty}
	if len(parts) == 3 {
		price, err := parseDecimal(field, parts[2])
		if err != nil {
			return dto.InvoiceItemRequest{}, err
		}
		item.UnitPrice = &price
	}
	return item, nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id", "debe ser un entero positivo")
	}
	return id, nil
}
