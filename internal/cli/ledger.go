package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/internal/application/dto"
)

// NewLedgerCommand crea el grupo ledger (add, list).
func NewLedgerCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Movimientos de ingresos y egresos",
	}
	cmd.AddCommand(newLedgerAddCommand(opts))
	cmd.AddCommand(newLedgerListCommand(opts))
	return cmd
}

func newLedgerAddCommand(opts *RootOptions) *cobra.Command {
	var (
		in     dto.CreateLedgerEntryRequest
		amount string
	)
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Registra un movimiento",
		Example: `  wirebiz ledger add --name "Alquiler" --amount 1500 --type debit --date 2024-03-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseDecimal("amount", amount)
			if err != nil {
				return err
			}
			in.Amount = a
			return opts.withSession(cmd.Context(), func(s *session) error {
				e, err := s.ledger.Add(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(e, func(w io.Writer) {
					printLedger(w, []*dto.LedgerEntryResponse{e})
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "concepto (requerido)")
	cmd.Flags().StringVar(&amount, "amount", "0", "monto")
	cmd.Flags().StringVar(&in.Type, "type", "", "credit|debit (por defecto debit)")
	cmd.Flags().StringVar(&in.Details, "details", "", "detalle")
	cmd.Flags().StringVar(&in.Date, "date", "", "fecha AAAA-MM-DD (vacío = ahora)")
	return cmd
}

func newLedgerListCommand(opts *RootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los movimientos (o los que coinciden con --search)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				var (
					list []*dto.LedgerEntryResponse
					err  error
				)
				if query != "" {
					list, err = s.ledger.Search(cmd.Context(), query)
				} else {
					list, err = s.ledger.GetAll(cmd.Context())
				}
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(list, func(w io.Writer) { printLedger(w, list) })
			})
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "filtra por concepto o id")
	return cmd
}

func printLedger(w io.Writer, list []*dto.LedgerEntryResponse) {
	fmt.Fprintln(w, "ID\tFECHA\tTIPO\tCONCEPTO\tMONTO")
	for _, e := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Type, e.Name, e.Amount.StringFixed(2))
	}
}
