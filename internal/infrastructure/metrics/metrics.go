// Package metrics expone contadores Prometheus de los motores, la caché y el HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evodia"

// Recorder agrupa los colectores; implementa inventory.Recorder y cache.LookupObserver.
type Recorder struct {
	reg *prometheus.Registry

	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	partialCommits *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New registra los colectores en un registro propio (más los de proceso y runtime).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Operaciones de venta, producción y compra por resultado.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones de los motores.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		partialCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_commits_total",
			Help:      "Operaciones que quedaron a medias y requieren conciliación.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Lecturas de tablas por resultado en caché.",
		}, []string{"table", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		r.operations, r.duration, r.partialCommits, r.cacheLookups, r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveOperation registra el resultado de una operación de los motores.
func (r *Recorder) ObserveOperation(kind, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(kind, outcome).Inc()
	r.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if outcome == "partial_commit" {
		r.partialCommits.WithLabelValues(kind).Inc()
	}
}

// CacheLookup registra un acierto o fallo de caché.
func (r *Recorder) CacheLookup(table string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(table, result).Inc()
}

// ObserveRequest registra una petición HTTP atendida.
func (r *Recorder) ObserveRequest(method, route string, status int) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry registro subyacente (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler handler net/http para /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
