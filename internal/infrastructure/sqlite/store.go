package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wirebiz/internal/domain"
)

const (
	defaultBusyTimeout = 5 * time.Second
	defaultReadConns   = 4
)

// Options configuración de apertura del almacén.
type Options struct {
	Path          string
	SchemaVersion int           // 0 = última versión declarada
	BusyTimeout   time.Duration // 0 = 5s
	ReadConns     int           // 0 = 4
	Schema        *Schema       // nil = DefaultSchema()
	Logger        zerolog.Logger
}

// Store almacén SQLite en modo WAL.
// Un único escritor (las transacciones ReadWrite nunca se intercalan) y un pool
// de lectores de solo consulta.
type Store struct {
	path    string
	writer  *sql.DB
	reader  *sql.DB
	schema  *Schema
	version int
	log     zerolog.Logger
}

// Open crea o abre la base en opts.Path y lleva el esquema a la versión esperada.
//
// La conexión se configura con:
//   - WAL para lecturas concurrentes durante escrituras
//   - synchronous NORMAL
//   - busy timeout configurable
//   - claves foráneas activas
//
// Es idempotente: abrir varias veces la misma ruta no altera los datos.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Schema == nil {
		opts.Schema = DefaultSchema()
	}
	if opts.SchemaVersion == 0 {
		opts.SchemaVersion = opts.Schema.Latest()
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaultBusyTimeout
	}
	if opts.ReadConns <= 0 {
		opts.ReadConns = defaultReadConns
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:") {
		return nil, fmt.Errorf("%w: se requiere una ruta de archivo persistente", domain.ErrSchemaUnavailable)
	}
	// Los parámetros del DSN los fija el almacén (mode=memory incluido).
	if strings.Contains(path, "?") {
		return nil, fmt.Errorf("%w: la ruta no admite parámetros de consulta: %s", domain.ErrSchemaUnavailable, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: crear directorio %s: %w", domain.ErrSchemaUnavailable, dir, err)
		}
	}

	writer, err := openDB(ctx, writerDSN(path, opts.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: abrir escritor: %w", domain.ErrSchemaUnavailable, err)
	}
	// SQLite admite un solo escritor; una conexión evita SQLITE_BUSY entre escritores propios.
	writer.SetMaxOpenConns(1)
	writer.SetMaxIdleConns(1)

	log := opts.Logger.With().Str("store", path).Logger()
	from, err := migrate(ctx, writer, opts.Schema, opts.SchemaVersion, log)
	if err != nil {
		writer.Close()
		var conflict *domain.MigrationConflict
		if errors.As(err, &conflict) {
			log.Error().Err(err).Int("stored", from).Int("expected", opts.SchemaVersion).Msg("migración rechazada")
		}
		return nil, err
	}

	reader, err := openDB(ctx, readerDSN(path, opts.BusyTimeout))
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("%w: abrir lector: %w", domain.ErrSchemaUnavailable, err)
	}
	reader.SetMaxOpenConns(opts.ReadConns)
	reader.SetMaxIdleConns(opts.ReadConns)

	log.Debug().Int("version", opts.SchemaVersion).Msg("almacén abierto")
	return &Store{
		path:    path,
		writer:  writer,
		reader:  reader,
		schema:  opts.Schema,
		version: opts.SchemaVersion,
		log:     log,
	}, nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func writerDSN(path string, busy time.Duration) string {
	q := url.Values{}
	q.Set("_busy_timeout", strconv.FormatInt(busy.Milliseconds(), 10))
	q.Set("_foreign_keys", "1")
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_txlock", "immediate")
	return path + "?" + q.Encode()
}

// readerDSN no fija journal_mode: WAL es persistente y ya lo activó el escritor.
func readerDSN(path string, busy time.Duration) string {
	q := url.Values{}
	q.Set("_busy_timeout", strconv.FormatInt(busy.Milliseconds(), 10))
	q.Set("_foreign_keys", "1")
	q.Set("_query_only", "1")
	return path + "?" + q.Encode()
}

// Close cierra escritor y lectores.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.reader.Close(), s.writer.Close())
}

// Version versión de esquema vigente.
func (s *Store) Version() int { return s.version }

// Path ruta del archivo de base de datos.
func (s *Store) Path() string { return s.path }
