// Package store elige el backend del almacén de registros según configuración.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/evodia-api/internal/infrastructure/sheets"
	"github.com/jhoicas/evodia-api/pkg/config"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// Open abre el backend configurado (xlsx o postgres). close libera recursos (pool).
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendXLSX:
		return sheets.NewWorkbookStore(cfg.Store.WorkbookPath, log), func() {}, nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewRecordStore(pool, log), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("STORE_BACKEND %q no soportado", cfg.Store.Backend)
}
