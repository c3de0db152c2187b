package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type migrateResult struct {
	Path    string `json:"path"`
	Version int    `json:"version"`
}

// NewMigrateCommand crea el comando migrate: abre --db y lleva el esquema a la
// versión configurada (STORE_SCHEMA_VERSION, 0 = la última).
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o migra el almacén",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				res := migrateResult{Path: s.store.Path(), Version: s.store.Version()}
				return opts.output(cmd).Success(res, func(w io.Writer) {
					fmt.Fprintf(w, "%s\tversión %d\n", res.Path, res.Version)
				})
			})
		},
	}
}
