// seed carga un catálogo de productos en XML en el almacén.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual. La base es STORE_PATH.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/wirebiz/internal/application/ports"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
	"github.com/jhoicas/wirebiz/internal/infrastructure/catalog"
	"github.com/jhoicas/wirebiz/internal/infrastructure/sqlite"
	"github.com/jhoicas/wirebiz/pkg/config"
	"github.com/jhoicas/wirebiz/pkg/logger"
)

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	seedLog := log.Component("seed")

	loc, err := cfg.App.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Zona horaria: %v\n", err)
		os.Exit(1)
	}

	products, err := catalog.ParseFile(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	manager := sqlite.NewManager(sqlite.Options{
		Path:          cfg.Store.Path,
		SchemaVersion: cfg.Store.SchemaVersion,
		BusyTimeout:   cfg.Store.BusyTimeout(),
		ReadConns:     cfg.Store.ReadConns,
		Logger:        log.Component("store"),
	})
	store, err := manager.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	uc := usecase.NewProductUseCase(sqlite.NewTxRunner(store, log.Component("store")), ports.SystemClock{}, loc)
	res, err := catalog.Seed(ctx, uc, products, seedLog)
	if err != nil {
		seedLog.Error().Err(err).Int("added", res.Added).Msg("carga interrumpida")
		manager.Close()
		os.Exit(1)
	}

	fmt.Printf("Catálogo %s en %s: %d agregados, %d duplicados, %d inválidos\n",
		xmlPath, store.Path(), res.Added, res.Duplicate, res.Invalid)
}
