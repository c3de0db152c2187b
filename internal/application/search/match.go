// Package search implementa la búsqueda lineal por nombre o identificador.
//
// No usa índices: un índice de prefijo o igualdad no sirve para subcadenas,
// así que el costo es O(n) sobre el listado completo, sin paginación.
package search

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Match indica si query aparece, sin distinguir mayúsculas, en text o en el id decimal.
// Una consulta vacía (o solo espacios) coincide con todo.
func Match(query, text string, id int64) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	fold := cases.Fold()
	if strings.Contains(fold.String(text), fold.String(q)) {
		return true
	}
	return id > 0 && strings.Contains(strconv.FormatInt(id, 10), q)
}

// Filter devuelve los elementos de list que coinciden con query.
func Filter[T any](list []T, query string, key func(T) (string, int64)) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		text, id := key(v)
		if Match(query, text, id) {
			out = append(out, v)
		}
	}
	return out
}
