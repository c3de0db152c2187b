package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/internal/application/dto"
)

// NewProductsCommand crea el grupo products (add, list).
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Catálogo de productos",
	}
	cmd.AddCommand(newProductsAddCommand(opts))
	cmd.AddCommand(newProductsListCommand(opts))
	return cmd
}

func newProductsAddCommand(opts *RootOptions) *cobra.Command {
	var (
		in    dto.CreateProductRequest
		price string
	)
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Agrega un producto al catálogo",
		Example: `  wirebiz products add --name "Cable 1.5mm" --code W15 --price 10.00 --stock 100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseDecimal("price", price)
			if err != nil {
				return err
			}
			in.Price = p
			return opts.withSession(cmd.Context(), func(s *session) error {
				res, err := s.products.Add(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(res, func(w io.Writer) {
					printProducts(w, []*dto.ProductResponse{res})
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre (único)")
	cmd.Flags().StringVar(&in.Code, "code", "", "código (único)")
	cmd.Flags().StringVar(&in.Category, "category", "", "wire|cable|conduit|fitting|other (por defecto wire)")
	cmd.Flags().StringVar(&price, "price", "0", "precio de venta")
	cmd.Flags().StringVar(&in.HSNCode, "hsn", "", "código HSN")
	cmd.Flags().StringVar(&in.Unit, "unit", "", "meter|roll|piece|kilogram (por defecto meter)")
	cmd.Flags().Int64Var(&in.Stock, "stock", 0, "existencias")
	return cmd
}

func newProductsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista el catálogo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				list, err := s.products.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(list, func(w io.Writer) { printProducts(w, list) })
			})
		},
	}
}

func printProducts(w io.Writer, list []*dto.ProductResponse) {
	fmt.Fprintln(w, "ID\tCÓDIGO\tNOMBRE\tCATEGORÍA\tPRECIO\tUNIDAD\tSTOCK")
	for _, p := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			p.ID, p.Code, p.Name, p.Category, p.Price.StringFixed(2), p.Unit, p.Stock)
	}
}
