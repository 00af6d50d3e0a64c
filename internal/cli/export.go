package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/infrastructure/sheets"
)

// NewExportCommand vuelca una tabla a un libro .xlsx.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <table> <file.xlsx>",
		Short: "Exportar una tabla a Excel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, path := args[0], args[1]
			schema, err := repository.SchemaFor(table)
			if err != nil {
				return err
			}
			e, err := rootOpts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.close()

			rows, err := e.store.ReadAll(cmd.Context(), table)
			if err != nil {
				return fmt.Errorf("leer %s: %w", table, err)
			}
			header := schema.ColumnNames()
			cells := make([][]string, len(rows))
			for i, row := range rows {
				cells[i] = make([]string, len(header))
				for j, col := range header {
					cells[i][j] = row[col]
				}
			}
			data, err := sheets.NewReportExporter().Export(table, header, cells)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d filas de %s en %s\n", len(rows), table, path)
			return nil
		},
	}
}
