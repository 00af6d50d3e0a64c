// Package cli implementa los comandos de evodiactl.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/infrastructure/store"
	"github.com/jhoicas/evodia-api/pkg/config"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// RootOptions flags globales. Backend y Workbook pisan STORE_BACKEND y STORE_WORKBOOK_PATH.
type RootOptions struct {
	Verbose  bool
	Backend  string
	Workbook string
}

// NewRootCommand crea el comando raíz de evodiactl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "evodiactl",
		Short:         "Administración del almacén de registros de Evodia",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log detallado")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "xlsx | postgres (por defecto STORE_BACKEND)")
	cmd.PersistentFlags().StringVar(&opts.Workbook, "workbook", "", "ruta del libro .xlsx (por defecto STORE_WORKBOOK_PATH)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewNextIDCommand(opts))

	return cmd
}

// env configuración y almacén abiertos para un comando.
type env struct {
	cfg   *config.Config
	store repository.RecordStore
	log   *logger.Logger
	close func()
}

func (o *RootOptions) open(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if o.Backend != "" {
		cfg.Store.Backend = o.Backend
	}
	if o.Workbook != "" {
		cfg.Store.WorkbookPath = o.Workbook
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), logger.Config{Env: "development", Level: level, Service: "evodiactl"})

	s, closeFn, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, store: s, log: log, close: closeFn}, nil
}
