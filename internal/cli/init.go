package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// NewInitCommand crea las tablas que falten.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Crear las tablas ausentes con su encabezado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := rootOpts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.store.EnsureTables(cmd.Context()); err != nil {
				return fmt.Errorf("inicializar tablas: %w", err)
			}
			for _, s := range repository.Schemas() {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", s.Name)
			}
			return nil
		},
	}
}
