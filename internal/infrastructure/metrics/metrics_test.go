package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/infrastructure/metrics"
)

func TestObserveOperation_ContadoresPorResultado(t *testing.T) {
	r := metrics.New()
	r.ObserveOperation("sale", "ok", 20*time.Millisecond)
	r.ObserveOperation("sale", "ok", 30*time.Millisecond)
	r.ObserveOperation("purchase", "partial_commit", time.Millisecond)

	body := scrape(t, r)
	assert.Contains(t, body, `evodia_operations_total{kind="sale",outcome="ok"} 2`)
	assert.Contains(t, body, `evodia_partial_commits_total{kind="purchase"} 1`)
	assert.Contains(t, body, `evodia_operation_duration_seconds_count{kind="sale"} 2`)
}

func TestCacheLookup_AciertosYFallos(t *testing.T) {
	r := metrics.New()
	r.CacheLookup("inventory_stock", true)
	r.CacheLookup("inventory_stock", false)
	r.CacheLookup("inventory_stock", true)

	n, err := testutil.GatherAndCount(r.Registry(), "evodia_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, scrape(t, r), `evodia_cache_lookups_total{result="hit",table="inventory_stock"} 2`)
}

func TestObserveRequest(t *testing.T) {
	r := metrics.New()
	r.ObserveRequest("POST", "/api/sales", 201)
	assert.Contains(t, scrape(t, r), `evodia_http_requests_total{method="POST",route="/api/sales",status="201"} 1`)
}

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(b)
}
