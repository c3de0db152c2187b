package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/pkg/config"
	"github.com/jhoicas/wirebiz/pkg/logger"
)

// RootOptions flags globales de todos los comandos.
type RootOptions struct {
	DB      string
	Format  string // "json" | "text"
	Verbose bool

	cfg *config.Config
	log *logger.Logger
}

// ValidFormats formatos de salida permitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz de wirebiz.
func NewRootCommand(cfg *config.Config, log *logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.Nop()
	}
	opts := &RootOptions{cfg: cfg, log: log}

	cmd := &cobra.Command{
		Use:   "wirebiz",
		Short: "Clientes, productos, facturas y movimientos de un negocio de cables",
		Long: `wirebiz administra el almacén local (SQLite) de un negocio de cables y
accesorios eléctricos: clientes, catálogo, facturas, movimientos de caja y resúmenes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("formato inválido %q: debe ser uno de %v", opts.Format, ValidFormats)
			}
			if opts.DB == "" {
				return fmt.Errorf("--db requerido")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", cfg.Store.Path, "ruta del archivo SQLite")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "registra el detalle del almacén")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCustomersCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewInvoicesCommand(opts))
	cmd.AddCommand(NewLedgerCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))

	return cmd
}

// output formateador para el comando en curso.
func (o *RootOptions) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// Execute corre el CLI con args y devuelve el código de salida. Los errores se
// escriben en stderr (o en stdout como JSON con --format json).
func Execute(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string, stdout, stderr io.Writer) int {
	if log == nil {
		log = logger.Nop()
	}
	cliLog := log.Component("cli")
	cliLog.Debug().Strs("args", args).Msg("inicio")

	cmd := NewRootCommand(cfg, log)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	format, _ := cmd.PersistentFlags().GetString("format")
	out := &OutputFormatter{Format: format, Writer: stderr}
	if format == "json" {
		out.Writer = stdout
	}
	_ = out.Error(err)
	cliLog.Debug().Err(err).Msg("comando fallido")
	return ExitCode(err)
}
