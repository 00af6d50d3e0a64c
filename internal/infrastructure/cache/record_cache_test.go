package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/infrastructure/cache"
)

type countingStore struct {
	rows     map[string][]repository.Row
	reads    int
	writeErr error
}

func (c *countingStore) ReadAll(_ context.Context, table string) ([]repository.Row, error) {
	c.reads++
	return c.rows[table], nil
}

func (c *countingStore) Append(_ context.Context, table string, row repository.Row) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.rows[table] = append(c.rows[table], row)
	return nil
}

func (c *countingStore) AppendBatch(_ context.Context, table string, rows []repository.Row) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.rows[table] = append(c.rows[table], rows...)
	return nil
}

func (c *countingStore) OverwriteAll(_ context.Context, table string, rows []repository.Row) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.rows[table] = rows
	return nil
}

func (c *countingStore) EnsureTables(context.Context) error { return nil }

type hits struct{ hit, miss int }

func (h *hits) CacheLookup(_ string, hit bool) {
	if hit {
		h.hit++
	} else {
		h.miss++
	}
}

func newCache(inner *countingStore, now *time.Time, obs *hits) *cache.Store {
	return cache.New(inner, 10*time.Minute,
		cache.WithClock(func() time.Time { return *now }),
		cache.WithObserver(obs),
	)
}

func TestReadAll_SirveDesdeCacheHastaElTTL(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{"sales_orders": {{"receipt_id": "EVO-S-0001"}}}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := &hits{}
	c := newCache(inner, &now, obs)
	ctx := context.Background()

	_, err := c.ReadAll(ctx, "sales_orders")
	require.NoError(t, err)
	_, err = c.ReadAll(ctx, "sales_orders")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.reads)
	assert.Equal(t, 1, obs.hit)
	assert.Equal(t, 1, obs.miss)

	now = now.Add(10 * time.Minute)
	_, err = c.ReadAll(ctx, "sales_orders")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.reads, "vencido tras el TTL")
}

func TestEscrituraInvalida(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{}}
	now := time.Now()
	c := newCache(inner, &now, &hits{})
	ctx := context.Background()

	_, _ = c.ReadAll(ctx, "inventory_stock")
	_, _ = c.ReadAll(ctx, "products_bom")
	require.NoError(t, c.Append(ctx, "inventory_stock", repository.Row{"material_id": "MAT-0001"}))

	rows, err := c.ReadAll(ctx, "inventory_stock")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "la escritura se ve de inmediato")
	assert.Equal(t, 3, inner.reads)

	_, _ = c.ReadAll(ctx, "products_bom")
	assert.Equal(t, 3, inner.reads, "otras tablas siguen en caché")
}

func TestEscrituraFallidaTambienInvalida(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{}}
	now := time.Now()
	c := newCache(inner, &now, &hits{})
	ctx := context.Background()

	_, _ = c.ReadAll(ctx, "inventory_stock")
	inner.writeErr = errors.New("boom")
	assert.Error(t, c.OverwriteAll(ctx, "inventory_stock", nil))
	_, _ = c.ReadAll(ctx, "inventory_stock")
	assert.Equal(t, 2, inner.reads)
}

func TestReadAll_DevuelveCopias(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{"products_bom": {{"product_name": "A"}}}}
	now := time.Now()
	c := newCache(inner, &now, &hits{})
	ctx := context.Background()

	rows, _ := c.ReadAll(ctx, "products_bom")
	rows[0]["product_name"] = "mutado"
	again, _ := c.ReadAll(ctx, "products_bom")
	assert.Equal(t, "A", again[0]["product_name"])
}

func TestTTLCeroNoCachea(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{}}
	c := cache.New(inner, 0)
	_, _ = c.ReadAll(context.Background(), "sales_orders")
	_, _ = c.ReadAll(context.Background(), "sales_orders")
	assert.Equal(t, 2, inner.reads)
}

func TestInvalidateAll(t *testing.T) {
	inner := &countingStore{rows: map[string][]repository.Row{}}
	now := time.Now()
	c := newCache(inner, &now, &hits{})
	ctx := context.Background()

	_, _ = c.ReadAll(ctx, "sales_orders")
	c.InvalidateAll()
	_, _ = c.ReadAll(ctx, "sales_orders")
	assert.Equal(t, 2, inner.reads)
}
