// Package catalog lee catálogos de productos en XML y los carga en el almacén.
//
// Formato esperado (ISO-8859-1 o UTF-8):
//
//	<catalogo>
//	  <producto codigo="W15" nombre="Cable 1.5mm" categoria="alambre" precio="10.00"
//	            unidad="metro" stock="100" hsn="8544"/>
//	</catalogo>
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
)

// Sinónimos en español aceptados en categoria y unidad.
var (
	categoryAliases = map[string]string{
		"alambre":    entity.CategoryWire,
		"tubo":       entity.CategoryConduit,
		"tuberia":    entity.CategoryConduit,
		"tubería":    entity.CategoryConduit,
		"accesorio":  entity.CategoryFitting,
		"accesorios": entity.CategoryFitting,
		"otro":       entity.CategoryOther,
	}
	unitAliases = map[string]string{
		"metro":     entity.UnitMeter,
		"m":         entity.UnitMeter,
		"rollo":     entity.UnitRoll,
		"pieza":     entity.UnitPiece,
		"unidad":    entity.UnitPiece,
		"kilogramo": entity.UnitKilogram,
		"kg":        entity.UnitKilogram,
	}
)

// ParseFile lee el catálogo en path.
func ParseFile(path string) ([]dto.CreateProductRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: abrir %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse lee un catálogo desde r. Los atributos vacíos quedan en su valor cero y
// los valores por defecto (categoría, unidad) los aplica ProductUseCase.
func Parse(r io.Reader) ([]dto.CreateProductRequest, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("catalog: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "catalogo" {
		return nil, fmt.Errorf("catalog: se esperaba raíz <catalogo>")
	}

	var out []dto.CreateProductRequest
	for i, el := range root.SelectElements("producto") {
		field := func(name string) string { return fmt.Sprintf("producto[%d].%s", i, name) }

		req := dto.CreateProductRequest{
			Code:     strings.TrimSpace(el.SelectAttrValue("codigo", "")),
			Name:     strings.TrimSpace(el.SelectAttrValue("nombre", "")),
			Category: normalize(el.SelectAttrValue("categoria", ""), categoryAliases),
			Unit:     normalize(el.SelectAttrValue("unidad", ""), unitAliases),
			HSNCode:  strings.TrimSpace(el.SelectAttrValue("hsn", "")),
		}
		if raw := strings.TrimSpace(el.SelectAttrValue("precio", "")); raw != "" {
			// Acepta coma decimal ("10,50").
			price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
			if err != nil {
				return nil, domain.Invalid(field("precio"), "número decimal inválido")
			}
			req.Price = price
		}
		if raw := strings.TrimSpace(el.SelectAttrValue("stock", "")); raw != "" {
			stock, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, domain.Invalid(field("stock"), "entero inválido")
			}
			req.Stock = stock
		}
		out = append(out, req)
	}
	return out, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "UTF-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("catalog: codificación no soportada %q", charset)
}

func normalize(v string, aliases map[string]string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if alias, ok := aliases[v]; ok {
		return alias
	}
	return v
}

// ProductAdder alta de productos (ProductUseCase).
type ProductAdder interface {
	Add(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// Result resumen de una carga.
type Result struct {
	Added     int
	Duplicate int
	Invalid   int
}

// Seed da de alta cada producto. Duplicados (por nombre o código) y productos
// inválidos se omiten y se registran; cualquier otro error detiene la carga.
func Seed(ctx context.Context, adder ProductAdder, products []dto.CreateProductRequest, log zerolog.Logger) (Result, error) {
	var res Result
	for _, p := range products {
		_, err := adder.Add(ctx, p)
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, domain.ErrDuplicate):
			res.Duplicate++
			log.Debug().Str("code", p.Code).Err(err).Msg("producto duplicado, omitido")
		case errors.Is(err, domain.ErrInvalidInput):
			res.Invalid++
			log.Warn().Str("code", p.Code).Err(err).Msg("producto inválido, omitido")
		default:
			return res, fmt.Errorf("catalog: alta de %q: %w", p.Code, err)
		}
	}
	return res, nil
}
