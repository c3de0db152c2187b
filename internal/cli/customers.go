package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/internal/application/dto"
)

// NewCustomersCommand crea el grupo customers (add, list, search).
func NewCustomersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Clientes",
	}
	cmd.AddCommand(newCustomersAddCommand(opts))
	cmd.AddCommand(newCustomersListCommand(opts))
	cmd.AddCommand(newCustomersSearchCommand(opts))
	return cmd
}

func newCustomersAddCommand(opts *RootOptions) *cobra.Command {
	var (
		in      dto.CreateCustomerRequest
		balance string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra un cliente",
		Example: `  wirebiz customers add --name "John Doe" --phone 9876543210 --address "12 MG Road"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("balance") {
				b, err := parseDecimal("balance", balance)
				if err != nil {
					return err
				}
				in.Balance = &b
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				c, err := s.customers.Add(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(c, func(w io.Writer) {
					printCustomers(w, []*dto.CustomerResponse{c})
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre (requerido)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "teléfono (único)")
	cmd.Flags().StringVar(&in.TaxID, "gstin", "", "identificación tributaria")
	cmd.Flags().StringVar(&in.Address, "address", "", "dirección")
	cmd.Flags().StringVar(&balance, "balance", "", "saldo inicial")
	return cmd
}

func newCustomersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los clientes en orden de alta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				list, err := s.customers.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(list, func(w io.Writer) { printCustomers(w, list) })
			})
		},
	}
}

func newCustomersSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <texto>",
		Short: "Busca clientes por nombre o id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return opts.withSession(cmd.Context(), func(s *session) error {
				list, err := s.customers.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(list, func(w io.Writer) { printCustomers(w, list) })
			})
		},
	}
}

func printCustomers(w io.Writer, list []*dto.CustomerResponse) {
	fmt.Fprintln(w, "ID\tNOMBRE\tTELÉFONO\tGSTIN\tDIRECCIÓN")
	for _, c := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.TaxID, c.Address)
	}
}
