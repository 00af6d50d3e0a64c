package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/evodia-api/internal/domain/bom"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// ImportOptions flags de import.
type ImportOptions struct {
	Encoding string
	DryRun   bool
}

// NewImportCommand reemplaza una tabla con el contenido de un CSV exportado del sistema anterior.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}
	cmd := &cobra.Command{
		Use:   "import <table> <file.csv>",
		Short: "Importar una tabla desde CSV (sobrescribe)",
		Long: `Importa un CSV cuya primera fila son los nombres de columna de la tabla.

La tabla se sobrescribe por completo. Las columnas ausentes quedan vacías y las
recetas de products_bom que no decodifican se informan pero se importan igual.

El lock de escritura es por proceso y no cubre al servidor: detener la API antes
de importar sobre el mismo libro o base.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&opts.Encoding, "encoding", EncodingUTF8, "utf-8 | windows-1252 | iso-8859-1")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validar sin escribir")
	return cmd
}

func runImport(cmd *cobra.Command, rootOpts *RootOptions, opts *ImportOptions, table, path string) error {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	r, err := decodingReader(f, opts.Encoding)
	if err != nil {
		return err
	}
	rows, missing, err := readTableCSV(r, schema)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(missing) > 0 {
		fmt.Fprintf(out, "columnas ausentes (quedan vacías): %s\n", strings.Join(missing, ", "))
	}
	if table == repository.TableProductsBOM {
		for _, row := range rows {
			if _, err := bom.Decode(row["components"]); err != nil {
				fmt.Fprintf(out, "⚠ receta %q: %v\n", row["product_name"], err)
			}
		}
	}
	if opts.DryRun {
		fmt.Fprintf(out, "%d filas válidas para %s (dry-run)\n", len(rows), table)
		return nil
	}

	e, err := rootOpts.open(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()
	if err := e.store.EnsureTables(ctx); err != nil {
		return fmt.Errorf("inicializar tablas: %w", err)
	}
	if err := e.store.OverwriteAll(ctx, table, rows); err != nil {
		return fmt.Errorf("escribir %s: %w", table, err)
	}
	e.log.Info().Str("table", table).Int("rows", len(rows)).Msg("tabla importada")
	fmt.Fprintf(out, "✓ %d filas importadas en %s\n", len(rows), table)
	return nil
}
