package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wirebiz/internal/application/analytics"
	"github.com/jhoicas/wirebiz/internal/application/billing"
	"github.com/jhoicas/wirebiz/internal/application/ledger"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite"
)

// session almacén abierto y casos de uso para una invocación del CLI.
type session struct {
	manager *sqlite.Manager
	store   *sqlite.Store
	loc     *time.Location

	customers *billing.CustomerUseCase
	products  *usecase.ProductUseCase
	invoices  *billing.InvoiceUseCase
	ledger    *ledger.UseCase
	summary   *analytics.SummaryUseCase
}

// openSession abre --db (migrando si hace falta) y arma los casos de uso.
func (o *RootOptions) openSession(ctx context.Context) (*session, error) {
	loc, err := o.cfg.App.Location()
	if err != nil {
		return nil, err
	}

	storeLog := o.log.Component("store")
	if o.Verbose {
		storeLog = storeLog.Level(zerolog.DebugLevel)
	}

	manager := sqlite.NewManager(sqlite.Options{
		Path:          o.DB,
		SchemaVersion: o.cfg.Store.SchemaVersion,
		BusyTimeout:   o.cfg.Store.BusyTimeout(),
		ReadConns:     o.cfg.Store.ReadConns,
		Logger:        storeLog,
	})
	store, err := manager.Open(ctx)
	if err != nil {
		return nil, err
	}

	tx := sqlite.NewTxRunner(store, storeLog)
	clock := ports.SystemClock{}
	return &session{
		manager:   manager,
		store:     store,
		loc:       loc,
		customers: billing.NewCustomerUseCase(tx, clock, loc),
		products:  usecase.NewProductUseCase(tx, clock, loc),
		invoices:  billing.NewInvoiceUseCase(tx, clock, loc),
		ledger:    ledger.NewUseCase(tx, clock, loc),
		summary:   analytics.NewSummaryUseCase(tx, clock, loc),
	}, nil
}

func (s *session) Close() error {
	return s.manager.Close()
}

// withSession abre el almacén, ejecuta fn y lo cierra.
func (o *RootOptions) withSession(ctx context.Context, fn func(s *session) error) (err error) {
	s, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
