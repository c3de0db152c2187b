package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/wirebiz/internal/application/analytics"
	"github.com/jhoicas/wirebiz/internal/application/billing"
	"github.com/jhoicas/wirebiz/internal/application/ledger"
	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/wirebiz/internal/interfaces/http"
	"github.com/jhoicas/wirebiz/pkg/config"
	"github.com/jhoicas/wirebiz/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Path).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	storeLog := log.Component("store")
	manager := sqlite.NewManager(sqlite.Options{
		Path:          cfg.Store.Path,
		SchemaVersion: cfg.Store.SchemaVersion,
		BusyTimeout:   cfg.Store.BusyTimeout(),
		ReadConns:     cfg.Store.ReadConns,
		Logger:        storeLog,
	})
	store, err := manager.Open(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura del almacén")
	}
	defer func() {
		if err := manager.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del almacén")
		}
	}()
	log.Info().Int("schema_version", store.Version()).Msg("almacén listo")

	txRunner := sqlite.NewTxRunner(store, storeLog)
	clock := ports.SystemClock{}

	customerUC := billing.NewCustomerUseCase(txRunner, clock, loc)
	productUC := usecase.NewProductUseCase(txRunner, clock, loc)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, clock, loc)
	ledgerUC := ledger.NewUseCase(txRunner, clock, loc)
	summaryUC := analytics.NewSummaryUseCase(txRunner, clock, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"service":        cfg.App.Name,
			"store":          manager.State(),
			"schema_version": store.Version(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		ProductUC:  productUC,
		InvoiceUC:  invoiceUC,
		LedgerUC:   ledgerUC,
		SummaryUC:  summaryUC,
		Location:   loc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
