package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendXLSX, cfg.Store.Backend)
	assert.Equal(t, 600, cfg.Store.CacheTTLSeconds)
	assert.Equal(t, "EVO-S", cfg.IDs.SalesPrefix)
	assert.Equal(t, "EVO-P", cfg.IDs.PurchasePrefix)
	assert.Equal(t, "MAT", cfg.IDs.MaterialPrefix)
	assert.Equal(t, 4, cfg.IDs.Width)
	assert.True(t, cfg.Inventory.LowStockThreshold.Equal(decimal.NewFromInt(10)))
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_BACKEND", "POSTGRES")
	t.Setenv("STORE_CACHE_TTL_SECONDS", "30")
	t.Setenv("ID_WIDTH", "6")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "2.5")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DB_PASSWORD", "p@ss:word")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 30, cfg.Store.CacheTTLSeconds)
	assert.Equal(t, 6, cfg.IDs.Width)
	assert.True(t, cfg.Inventory.LowStockThreshold.Equal(decimal.RequireFromString("2.5")))
	assert.False(t, cfg.Metrics.Enabled)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
}

func TestLoad_Invalidos(t *testing.T) {
	t.Setenv("STORE_BACKEND", "gsheets")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UmbralIlegible(t *testing.T) {
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "sepuluh")
	_, err := config.Load()
	assert.Error(t, err)
}
