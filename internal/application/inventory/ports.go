package inventory

import (
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/evodia-api/internal/domain"
)

// WriteLock serializa dentro del proceso toda sección leer-modificar-escribir sobre el
// almacén: motores de consumo e ingreso, editor de recetas y editor de reportes. Otros
// procesos que escriban la misma hoja siguen siendo "último en escribir gana".
type WriteLock struct {
	mu sync.Mutex
}

var _ sync.Locker = (*WriteLock)(nil)

// NewWriteLock crea el candado compartido.
func NewWriteLock() *WriteLock { return &WriteLock{} }

// Lock toma el candado.
func (l *WriteLock) Lock() { l.mu.Lock() }

// Unlock lo libera.
func (l *WriteLock) Unlock() { l.mu.Unlock() }

// Recorder recibe el resultado de cada operación de los motores (métricas).
type Recorder interface {
	ObserveOperation(kind, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}

// IDConfig prefijos y ancho de los IDs secuenciales.
type IDConfig struct {
	SalesPrefix    string
	PurchasePrefix string
	MaterialPrefix string
	Width          int
}

// DefaultIDConfig valores del negocio: EVO-S-0001, EVO-P-0001, MAT-0001.
func DefaultIDConfig() IDConfig {
	return IDConfig{SalesPrefix: "EVO-S", PurchasePrefix: "EVO-P", MaterialPrefix: "MAT", Width: 4}
}

// Options dependencias opcionales de los motores.
type Options struct {
	IDs             IDConfig
	DefaultCategory string
	Clock           func() time.Time
	Metrics         Recorder
	Lock            *WriteLock
}

func (o Options) withDefaults() Options {
	if o.IDs == (IDConfig{}) {
		o.IDs = DefaultIDConfig()
	}
	if o.DefaultCategory == "" {
		o.DefaultCategory = "Raw Material"
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Metrics == nil {
		o.Metrics = nopRecorder{}
	}
	if o.Lock == nil {
		o.Lock = NewWriteLock()
	}
	return o
}

// Outcome etiqueta corta del resultado de una operación.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrPartialCommit):
		return "partial_commit"
	case errors.Is(err, domain.ErrStoreWrite):
		return "store_write_failure"
	case errors.Is(err, domain.ErrRecipeNotFound):
		return "recipe_not_found"
	case errors.Is(err, domain.ErrRecipeMalformed):
		return "recipe_malformed"
	case errors.Is(err, domain.ErrMaterialNotFound):
		return "material_not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNoValidItems):
		return "no_valid_items"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
