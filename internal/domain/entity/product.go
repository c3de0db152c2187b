package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryWire    = "wire"
	CategoryCable   = "cable"
	CategoryConduit = "conduit"
	CategoryFitting = "fitting"
	CategoryOther   = "other"
)

// Unidades de medida.
const (
	UnitMeter    = "meter"
	UnitRoll     = "roll"
	UnitPiece    = "piece"
	UnitKilogram = "kilogram"
)

// Product representa un artículo del catálogo (cables, tubería, accesorios).
// Name y Code son únicos en todo el almacén.
type Product struct {
	ID        int64
	Name      string
	Code      string
	Category  string
	Price     decimal.Decimal // precio de venta vigente
	HSNCode   string          // clasificación tributaria (HSN/SAC)
	Unit      string
	Stock     int64
	CreatedAt time.Time
}

// ValidCategory indica si c es una categoría conocida.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWire, CategoryCable, CategoryConduit, CategoryFitting, CategoryOther:
		return true
	}
	return false
}

// ValidUnit indica si u es una unidad de medida conocida.
func ValidUnit(u string) bool {
	switch u {
	case UnitMeter, UnitRoll, UnitPiece, UnitKilogram:
		return true
	}
	return false
}
