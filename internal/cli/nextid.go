package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/domain/sequence"
	"github.com/jhoicas/evodia-api/pkg/config"
)

// NewNextIDCommand muestra el ID que se asignaría a la próxima fila de la tabla.
func NewNextIDCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next-id <table>",
		Short: "Mostrar el próximo ID secuencial de una tabla",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := repository.SchemaFor(args[0])
			if err != nil {
				return err
			}
			if schema.IDColumn == "" {
				return fmt.Errorf("%s no usa IDs secuenciales", schema.Name)
			}
			e, err := rootOpts.open(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.close()

			rows, err := e.store.ReadAll(cmd.Context(), schema.Name)
			if err != nil {
				return fmt.Errorf("leer %s: %w", schema.Name, err)
			}
			ids := make([]string, 0, len(rows))
			for _, row := range rows {
				if id := strings.TrimSpace(row[schema.IDColumn]); id != "" {
					ids = append(ids, id)
				}
			}
			prefix := prefixFor(e.cfg.IDs, schema.Name)
			fmt.Fprintln(cmd.OutOrStdout(), sequence.NewAllocator(prefix, e.cfg.IDs.Width, ids).Next())
			return nil
		},
	}
}

func prefixFor(ids config.IDConfig, table string) string {
	switch table {
	case repository.TableSalesOrders:
		return ids.SalesPrefix
	case repository.TablePurchaseOrders:
		return ids.PurchasePrefix
	default:
		return ids.MaterialPrefix
	}
}
