package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/infrastructure/sheets"
	"github.com/jhoicas/evodia-api/internal/infrastructure/store"
	"github.com/jhoicas/evodia-api/pkg/config"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

func TestOpen_Xlsx(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Backend:      config.BackendXLSX,
		WorkbookPath: filepath.Join(t.TempDir(), "evodia.xlsx"),
	}}
	s, closeFn, err := store.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	_, ok := s.(*sheets.WorkbookStore)
	assert.True(t, ok)
	require.NoError(t, s.EnsureTables(context.Background()))
	rows, err := s.ReadAll(context.Background(), repository.TableSalesOrders)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpen_BackendDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "gsheets"}}
	_, _, err := store.Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
