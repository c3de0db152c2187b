package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite/sqlitetest"
)

func newProductUseCase(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	clock := ports.ClockFunc(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) })
	return usecase.NewProductUseCase(sqlitetest.NewRunner(t), clock, time.UTC)
}

func TestProductUseCase_ValoresPorDefecto(t *testing.T) {
	uc := newProductUseCase(t)

	p, err := uc.Add(context.Background(), dto.CreateProductRequest{Name: "THHN 12", Code: "W-12", Price: decimal.RequireFromString("1.25")})
	require.NoError(t, err)
	assert.Equal(t, "wire", p.Category)
	assert.Equal(t, "meter", p.Unit)
	assert.Zero(t, p.Stock)
	assert.Positive(t, p.ID)
}

func TestProductUseCase_AltasConcurrentes(t *testing.T) {
	uc := newProductUseCase(t)
	const n = 20

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, err := uc.Add(ctx, dto.CreateProductRequest{
				Name:  fmt.Sprintf("Cable %02d", i),
				Code:  fmt.Sprintf("C-%02d", i),
				Price: decimal.NewFromInt(int64(i + 1)),
			})
			return err
		})
	}
	require.NoError(t, g.Wait(), "altas concurrentes con códigos distintos deben tener éxito")

	all, err := uc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, n)
	ids := make(map[int64]struct{}, n)
	for _, p := range all {
		ids[p.ID] = struct{}{}
	}
	assert.Len(t, ids, n, "cada alta recibe su propio id")
}

func TestProductUseCase_CodigoYNombreUnicos(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)
	_, err := uc.Add(ctx, dto.CreateProductRequest{Name: "THHN 12", Code: "W-12"})
	require.NoError(t, err)

	_, err = uc.Add(ctx, dto.CreateProductRequest{Name: "THHN 14", Code: "W-12"})
	var uv *domain.UniquenessViolation
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "code", uv.Index)

	_, err = uc.Add(ctx, dto.CreateProductRequest{Name: "THHN 12", Code: "W-99"})
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "name", uv.Index)
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc := newProductUseCase(t)
	cases := map[string]dto.CreateProductRequest{
		"name":     {Code: "X"},
		"code":     {Name: "X"},
		"category": {Name: "X", Code: "X", Category: "lamp"},
		"unit":     {Name: "X", Code: "X", Unit: "gallon"},
		"price":    {Name: "X", Code: "X", Price: decimal.NewFromInt(-1)},
		"stock":    {Name: "X", Code: "X", Stock: -5},
	}
	for field, in := range cases {
		_, err := uc.Add(context.Background(), in)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), field)
		assert.Equal(t, field, ve.Field)
	}
}

func TestProductUseCase_BusquedaYConsulta(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)
	p, err := uc.Add(ctx, dto.CreateProductRequest{Name: "EMT Conduit 1/2", Code: "C-05", Category: "conduit", Unit: "piece"})
	require.NoError(t, err)
	_, err = uc.Add(ctx, dto.CreateProductRequest{Name: "THHN 12", Code: "W-12"})
	require.NoError(t, err)

	found, err := uc.Search(ctx, "conduit")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "piece", got.Unit)

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
