package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

func newTestRunner(t *testing.T) (*Store, *TxRunner) {
	t.Helper()
	s := openTestStore(t, testPath(t), 0)
	return s, NewTxRunner(s, zerolog.Nop())
}

func countCustomers(t *testing.T, r *TxRunner) int {
	t.Helper()
	var n int
	err := r.Run(context.Background(), repository.ReadOnlyScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		var err error
		n, err = repos.Customers().Count(context.Background())
		return err
	})
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorRevierteTodo(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := r.Run(ctx, repository.ReadWriteScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		require.NoError(t, repos.Customers().Create(ctx, newCustomer("A", "1")))
		require.NoError(t, repos.Customers().Create(ctx, newCustomer("B", "2")))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countCustomers(t, r), "ningún efecto debe persistir tras el rollback")
}

func TestTxRunner_ViolacionUnicaRevierteLote(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()

	err := r.Run(ctx, repository.ReadWriteScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		if err := repos.Customers().Create(ctx, newCustomer("A", "555")); err != nil {
			return err
		}
		return repos.Customers().Create(ctx, newCustomer("B", "555"))
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	var uv *domain.UniquenessViolation
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, repository.CollectionCustomers, uv.Collection)
	assert.Equal(t, "phone", uv.Index)
	assert.Equal(t, "555", uv.Value)
	assert.Zero(t, countCustomers(t, r))
}

func TestTxRunner_TelefonoVacioNoColisiona(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()

	err := r.Run(ctx, repository.ReadWriteScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		if err := repos.Customers().Create(ctx, newCustomer("A", "")); err != nil {
			return err
		}
		return repos.Customers().Create(ctx, newCustomer("B", ""))
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countCustomers(t, r))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_SoloLecturaRechazaEscritura(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()

	err := r.Run(ctx, repository.ReadOnlyScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		return repos.Customers().Create(ctx, newCustomer("A", "1"))
	})
	assert.ErrorIs(t, err, domain.ErrOutOfScope)
	assert.Zero(t, countCustomers(t, r))
}

func TestTxRunner_ColeccionNoConcedida(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()

	err := r.Run(ctx, repository.ReadWriteScope(repository.CollectionCustomers), func(repos repository.Repos) error {
		_, err := repos.Products().List(ctx)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrOutOfScope)
}

func TestTxRunner_ColeccionNoDeclarada(t *testing.T) {
	_, r := newTestRunner(t)

	called := false
	err := r.Run(context.Background(), repository.ReadOnlyScope("suppliers"), func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.False(t, called)

	err = r.Run(context.Background(), repository.ReadOnlyScope(), func(repository.Repos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
}

func TestTxRunner_ColeccionDeVersionPosterior(t *testing.T) {
	s := openTestStore(t, testPath(t), 1)
	r := NewTxRunner(s, zerolog.Nop())

	err := r.Run(context.Background(), repository.ReadOnlyScope(repository.CollectionLedger), func(repository.Repos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos dentro de la transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_FacturaConLineas(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()
	scope := repository.ReadWriteScope(repository.CollectionCustomers, repository.CollectionProducts, repository.CollectionInvoices)

	var invoiceID int64
	err := r.Run(ctx, scope, func(repos repository.Repos) error {
		c := newCustomer("John Doe", "555")
		if err := repos.Customers().Create(ctx, c); err != nil {
			return err
		}
		p1, p2 := newProduct("THHN 12", "W-12"), newProduct("EMT 1/2", "C-05")
		if err := repos.Products().Create(ctx, p1); err != nil {
			return err
		}
		if err := repos.Products().Create(ctx, p2); err != nil {
			return err
		}
		inv := &entity.Invoice{
			Number:        "INV-1",
			Date:          testTime,
			DueDate:       testTime,
			CustomerID:    c.ID,
			TaxRate:       decimal.NewFromInt(18),
			PaymentMethod: entity.PaymentCash,
			CreatedAt:     testTime,
			Items: []entity.InvoiceItem{
				{ProductID: p1.ID, Name: p1.Name, Price: p1.Price, Quantity: 2},
				{ProductID: p2.ID, Name: p2.Name, Price: decimal.RequireFromString("3.25"), Quantity: 4},
			},
		}
		if err := repos.Invoices().Create(ctx, inv); err != nil {
			return err
		}
		invoiceID = inv.ID
		return nil
	})
	require.NoError(t, err)

	err = r.Run(ctx, repository.ReadOnlyScope(repository.CollectionInvoices), func(repos repository.Repos) error {
		inv, err := repos.Invoices().GetByID(ctx, invoiceID)
		require.NoError(t, err)
		require.NotNil(t, inv)
		require.Len(t, inv.Items, 2)
		assert.Equal(t, "THHN 12", inv.Items[0].Name)
		assert.Equal(t, int64(4), inv.Items[1].Quantity)
		assert.True(t, inv.Date.Equal(testTime))
		assert.Equal(t, "33", inv.Subtotal().String())

		missing, err := repos.Invoices().GetByID(ctx, invoiceID+100)
		require.NoError(t, err)
		assert.Nil(t, missing)

		list, err := repos.Invoices().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Len(t, list[0].Items, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestTxRunner_NumeroFacturaDuplicado(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()
	scope := repository.ReadWriteScope(repository.CollectionCustomers, repository.CollectionInvoices)

	err := r.Run(ctx, scope, func(repos repository.Repos) error {
		c := newCustomer("A", "")
		if err := repos.Customers().Create(ctx, c); err != nil {
			return err
		}
		for i := 0; i < 2; i++ {
			inv := &entity.Invoice{Number: "INV-1", Date: testTime, DueDate: testTime, CustomerID: c.ID, PaymentMethod: entity.PaymentCash, CreatedAt: testTime}
			if err := repos.Invoices().Create(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	})
	var uv *domain.UniquenessViolation
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, repository.CollectionInvoices, uv.Collection)
	assert.Equal(t, "number", uv.Index)
	assert.Equal(t, "INV-1", uv.Value)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RegistraMetricas(t *testing.T) {
	_, r := newTestRunner(t)
	ctx := context.Background()

	commits := testutil.ToFloat64(transactionsTotal.WithLabelValues("readwrite", outcomeCommit))
	rollbacks := testutil.ToFloat64(transactionsTotal.WithLabelValues("readwrite", outcomeRollback))

	require.NoError(t, r.Run(ctx, repository.ReadWriteScope(repository.CollectionLedger), func(repos repository.Repos) error {
		return repos.Ledger().Create(ctx, &entity.LedgerEntry{Name: "x", Amount: decimal.NewFromInt(1), Type: entity.EntryCredit, Date: testTime})
	}))
	_ = r.Run(ctx, repository.ReadWriteScope(repository.CollectionLedger), func(repository.Repos) error {
		return errors.New("abort")
	})

	assert.Equal(t, commits+1, testutil.ToFloat64(transactionsTotal.WithLabelValues("readwrite", outcomeCommit)))
	assert.Equal(t, rollbacks+1, testutil.ToFloat64(transactionsTotal.WithLabelValues("readwrite", outcomeRollback)))
}
