package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/domain"
)

// NewSummaryCommand crea el grupo summary (monthly, daily).
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Resúmenes mensual y diario",
	}
	cmd.AddCommand(newSummaryMonthlyCommand(opts))
	cmd.AddCommand(newSummaryDailyCommand(opts))
	return cmd
}

func newSummaryMonthlyCommand(opts *RootOptions) *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Ingresos y egresos del mes (sin flags = mes en curso)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yearSet, monthSet := cmd.Flags().Changed("year"), cmd.Flags().Changed("month")
			if yearSet != monthSet {
				return domain.Invalid("month", "indique --year y --month juntos")
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				var (
					sum *dto.MonthlySummaryDTO
					err error
				)
				if yearSet {
					sum, err = s.summary.MonthlySummary(cmd.Context(), year, month)
				} else {
					sum, err = s.summary.CurrentMonthlySummary(cmd.Context())
				}
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(sum, func(w io.Writer) {
					fmt.Fprintf(w, "Mes\t%04d-%02d\n", sum.Year, sum.Month)
					fmt.Fprintf(w, "Ingresos\t%s\n", sum.Income.StringFixed(2))
					fmt.Fprintf(w, "Egresos\t%s\n", sum.Expense.StringFixed(2))
					fmt.Fprintf(w, "Movimientos\t%d\n", sum.Transactions)
				})
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "año")
	cmd.Flags().IntVar(&month, "month", 0, "mes (1-12)")
	return cmd
}

func newSummaryDailyCommand(opts *RootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Ventas del día (sin --date = hoy)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				day, err := dto.ParseDate("date", date, s.loc)
				if err != nil {
					return err
				}
				var sum *dto.DailySummaryDTO
				if day.IsZero() {
					sum, err = s.summary.TodaySummary(cmd.Context())
				} else {
					sum, err = s.summary.DailySummary(cmd.Context(), day)
				}
				if err != nil {
					return err
				}
				return opts.output(cmd).Success(sum, func(w io.Writer) {
					fmt.Fprintf(w, "Día\t%s\n", sum.Date)
					fmt.Fprintf(w, "Ventas\t%s\n", sum.TotalSales.StringFixed(2))
					fmt.Fprintf(w, "Facturas\t%d\n", sum.InvoiceCount)
					fmt.Fprintf(w, "Clientes nuevos\t%d\n", sum.NewCustomers)
					fmt.Fprintf(w, "Unidades vendidas\t%d\n", sum.ProductsSold)
				})
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "día AAAA-MM-DD")
	return cmd
}
