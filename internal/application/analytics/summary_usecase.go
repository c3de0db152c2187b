// Package analytics contiene los resúmenes derivados: mensual de ingresos y
// egresos (movimientos) y diario de ventas (facturas y clientes).
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/domain"
	"github.com/jhoicas/wirebiz/internal/domain/entity"
	"github.com/jhoicas/wirebiz/internal/domain/repository"
)

// SummaryUseCase calcula resúmenes leyendo los listados completos y reduciendo en memoria.
//
// Los montos se acumulan en decimal exacto y se redondean a 2 decimales una sola vez al final.
// Un periodo sin registros devuelve un resumen en cero, nunca un error.
type SummaryUseCase struct {
	tx    repository.TxRunner
	clock ports.Clock
	loc   *time.Location
}

// NewSummaryUseCase construye el caso de uso. Los límites de día y mes se calculan en loc
// (nil = time.Local).
func NewSummaryUseCase(tx repository.TxRunner, clock ports.Clock, loc *time.Location) *SummaryUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryUseCase{tx: tx, clock: clock, loc: loc}
}

// MonthlySummary ingresos (credit), egresos (debit) y número de movimientos del mes.
func (uc *SummaryUseCase) MonthlySummary(ctx context.Context, year, month int) (*dto.MonthlySummaryDTO, error) {
	if month < 1 || month > 12 {
		return nil, domain.Invalid("month", "debe estar entre 1 y 12")
	}
	if year < 1 || year > 9999 {
		return nil, domain.Invalid("year", "fuera de rango")
	}

	// ── Rango: día 1 a las 00:00 hasta el día 1 del mes siguiente (excluido) ──
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	var entries []*entity.LedgerEntry
	err := uc.tx.Run(ctx, repository.ReadOnlyScope(repository.CollectionLedger), func(repos repository.Repos) error {
		var err error
		entries, err = repos.Ledger().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	income, expense := decimal.Zero, decimal.Zero
	count := 0
	for _, e := range entries {
		if !within(e.Date, start, end) {
			continue
		}
		count++
		switch e.Type {
		case entity.EntryCredit:
			income = income.Add(e.Amount)
		case entity.EntryDebit:
			expense = expense.Add(e.Amount)
		}
	}
	return &dto.MonthlySummaryDTO{
		Year:         year,
		Month:        month,
		Income:       income.Round(2),
		Expense:      expense.Round(2),
		Transactions: count,
	}, nil
}

// CurrentMonthlySummary resumen del mes en curso según el reloj.
func (uc *SummaryUseCase) CurrentMonthlySummary(ctx context.Context) (*dto.MonthlySummaryDTO, error) {
	now := uc.clock.Now().In(uc.loc)
	return uc.MonthlySummary(ctx, now.Year(), int(now.Month()))
}

// DailySummary ventas del día de date (en la zona configurada): total facturado,
// número de facturas, clientes dados de alta ese día y unidades vendidas.
// Facturas y clientes se leen en paralelo, cada uno en su transacción de solo lectura.
func (uc *SummaryUseCase) DailySummary(ctx context.Context, date time.Time) (*dto.DailySummaryDTO, error) {
	d := date.In(uc.loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 0, 1)

	var (
		invoices  []*entity.Invoice
		customers []*entity.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return uc.tx.Run(gctx, repository.ReadOnlyScope(repository.CollectionInvoices), func(repos repository.Repos) error {
			var err error
			invoices, err = repos.Invoices().List(gctx)
			return err
		})
	})
	g.Go(func() error {
		return uc.tx.Run(gctx, repository.ReadOnlyScope(repository.CollectionCustomers), func(repos repository.Repos) error {
			var err error
			customers, err = repos.Customers().List(gctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DailySummaryDTO{Date: dto.FormatDate(start, uc.loc)}
	sales := decimal.Zero
	for _, inv := range invoices {
		if !within(inv.Date, start, end) {
			continue
		}
		out.InvoiceCount++
		sales = sales.Add(inv.Totals().Total)
		out.ProductsSold += inv.Quantity()
	}
	for _, c := range customers {
		if within(c.CreatedAt, start, end) {
			out.NewCustomers++
		}
	}
	out.TotalSales = sales.Round(2)
	return out, nil
}

// TodaySummary resumen del día actual según el reloj.
func (uc *SummaryUseCase) TodaySummary(ctx context.Context) (*dto.DailySummaryDTO, error) {
	return uc.DailySummary(ctx, uc.clock.Now())
}

// within indica si t está en [start, end).
func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
