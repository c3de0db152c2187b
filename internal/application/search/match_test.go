package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wirebiz/internal/application/search"
)

func TestMatch_SinDistinguirMayusculas(t *testing.T) {
	assert.True(t, search.Match("doe", "John Doe", 1))
	assert.True(t, search.Match("DOE", "john doe", 1))
	assert.True(t, search.Match("straße", "STRASSE Electric", 7), "plegado Unicode")
	assert.False(t, search.Match("doe", "Jane Roe", 2))
}

func TestMatch_PorIdentificador(t *testing.T) {
	assert.True(t, search.Match("12", "Acme", 312))
	assert.False(t, search.Match("12", "Acme", 31))
	assert.False(t, search.Match("0", "Acme", 0), "id sin asignar no coincide")
}

func TestMatch_ConsultaVaciaDevuelveTodo(t *testing.T) {
	assert.True(t, search.Match("", "x", 1))
	assert.True(t, search.Match("   ", "x", 1))
}

func TestFilter_ConservaOrden(t *testing.T) {
	type rec struct {
		id   int64
		name string
	}
	list := []rec{{1, "John Doe"}, {2, "Jane Roe"}, {3, "Doe Supplies"}}
	got := search.Filter(list, "doe", func(r rec) (string, int64) { return r.name, r.id })
	assert.Equal(t, []rec{{1, "John Doe"}, {3, "Doe Supplies"}}, got)
}
