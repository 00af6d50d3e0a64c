// evodiactl administra el almacén de registros: crear tablas, importar exportaciones CSV
// antiguas, exportar tablas a Excel y consultar el próximo ID.
//
// Uso: go run ./cmd/evodiactl <comando> [flags]
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/evodia-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
