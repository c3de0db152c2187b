package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/internal/application/dto"
)

// NewInvoicesCommand crea el grupo invoices (create, list, show).
func NewInvoicesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Facturas",
	}
	cmd.AddCommand(newInvoicesCreateCommand(opts))
	cmd.AddCommand(newInvoicesListCommand(opts))
	cmd.AddCommand(newInvoicesShowCommand(opts))
	return cmd
}

func newInvoicesCreateCommand(opts *RootOptions) *cobra.Command {
	var (
		in                dto.CreateInvoiceRequest
		items             []string
		discount, taxRate string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Emite una factura",
		Long: `Emite una factura. Cada --item es producto:cantidad[:precio]; sin precio se
toma el precio vigente del producto.`,
		Example: `  wirebiz invoices create --customer 1 --item 3:2 --item 4:1:55.50 --tax-rate 18`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, raw := range items {
				it, err := parseItem(fmt.Sprintf("items[%d]", i), raw)
				if err != nil {
					return err
				}
				in.Items = append(in.Items, it)
			}
			var err error
			if in.Discount, err = parseDecimal("discount", discount); err != nil {
				return err
			}
			if in.TaxRate, err = parseDecimal("tax_rate", taxRate); err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				inv, err := s.invoices.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(inv, func(w io.Writer) { printInvoice(w, inv) })
			})
		},
	}
	cmd.Flags().Int64Var(&in.CustomerID, "customer", 0, "id del cliente (requerido)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "línea producto:cantidad[:precio] (repetible)")
	cmd.Flags().StringVar(&discount, "discount", "0", "descuento absoluto")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "0", "impuesto en porcentaje")
	cmd.Flags().StringVar(&in.Number, "number", "", "número (vacío = generado)")
	cmd.Flags().StringVar(&in.Date, "date", "", "fecha de emisión AAAA-MM-DD (vacío = ahora)")
	cmd.Flags().StringVar(&in.DueDate, "due-date", "", "vencimiento AAAA-MM-DD (vacío = emisión)")
	cmd.Flags().StringVar(&in.PaymentMethod, "payment", "", "cash|card|bank-transfer|other")
	cmd.Flags().StringVar(&in.ShippingAddress, "ship-to", "", "dirección de envío (vacío = la del cliente)")
	return cmd
}

func newInvoicesListCommand(opts *RootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las facturas (o las que coinciden con --search)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				var (
					list []*dto.InvoiceResponse
					err  error
				)
				if query != "" {
					list, err = s.invoices.Search(cmd.Context(), query)
				} else {
					list, err = s.invoices.GetAll(cmd.Context())
				}
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(list, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNÚMERO\tFECHA\tCLIENTE\tTOTAL")
					for _, inv := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
							inv.ID, inv.Number, inv.Date, inv.CustomerName, inv.Total.StringFixed(2))
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "filtra por número o id")
	return cmd
}

func newInvoicesShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra una factura con sus líneas y totales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				inv, err := s.invoices.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(inv, func(w io.Writer) { printInvoice(w, inv) })
			})
		},
	}
}

func printInvoice(w io.Writer, inv *dto.InvoiceResponse) {
	fmt.Fprintf(w, "Factura\t%s\n", inv.Number)
	fmt.Fprintf(w, "Fecha\t%s\n", inv.Date)
	fmt.Fprintf(w, "Vence\t%s\n", inv.DueDate)
	fmt.Fprintf(w, "Cliente\t%s (%d)\n", inv.CustomerName, inv.CustomerID)
	if inv.ShippingAddress != "" {
		fmt.Fprintf(w, "Envío\t%s\n", inv.ShippingAddress)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PRODUCTO\tHSN\tPRECIO\tCANT.\tIMPORTE")
	for _, it := range inv.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			it.Name, it.HSNCode, it.UnitPrice.StringFixed(2), it.Quantity, it.Amount.StringFixed(2))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal\t%s\n", inv.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Impuesto (%s%%)\t%s\n", inv.TaxRate.String(), inv.TaxAmount.StringFixed(2))
	if !inv.Discount.IsZero() {
		fmt.Fprintf(w, "Descuento\t%s\n", inv.Discount.StringFixed(2))
	}
	fmt.Fprintf(w, "Total\t%s\n", inv.Total.StringFixed(2))
}
