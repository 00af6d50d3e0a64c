// Package cache envuelve un RecordStore con una caché de lectura por tabla.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// LookupObserver recibe cada consulta a la caché (métricas de aciertos).
type LookupObserver interface {
	CacheLookup(table string, hit bool)
}

type entry struct {
	rows    []repository.Row
	expires time.Time
}

// Store caché de lectura con TTL. Toda escritura invalida la tabla escrita, aunque falle,
// porque el backend pudo quedar modificado a medias.
type Store struct {
	inner    repository.RecordStore
	ttl      time.Duration
	now      func() time.Time
	observer LookupObserver

	mu      sync.Mutex
	entries map[string]entry
	gen     map[string]uint64
}

var _ repository.RecordStore = (*Store)(nil)

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithObserver registra aciertos y fallos.
func WithObserver(o LookupObserver) Option { return func(s *Store) { s.observer = o } }

// New envuelve inner. ttl <= 0 desactiva la caché.
func New(inner repository.RecordStore, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
		gen:     make(map[string]uint64),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ReadAll devuelve una copia de las filas, desde la caché si están vigentes.
func (s *Store) ReadAll(ctx context.Context, table string) ([]repository.Row, error) {
	if s.ttl <= 0 {
		return s.inner.ReadAll(ctx, table)
	}

	s.mu.Lock()
	e, ok := s.entries[table]
	if ok && s.now().Before(e.expires) {
		rows := cloneRows(e.rows)
		s.mu.Unlock()
		s.observe(table, true)
		return rows, nil
	}
	gen := s.gen[table]
	s.mu.Unlock()
	s.observe(table, false)

	rows, err := s.inner.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Si hubo una escritura mientras se leía, el resultado puede estar viejo: no se guarda.
	if s.gen[table] == gen {
		s.entries[table] = entry{rows: cloneRows(rows), expires: s.now().Add(s.ttl)}
	}
	s.mu.Unlock()
	return rows, nil
}

// Append escribe e invalida la tabla.
func (s *Store) Append(ctx context.Context, table string, row repository.Row) error {
	defer s.Invalidate(table)
	return s.inner.Append(ctx, table, row)
}

// AppendBatch escribe e invalida la tabla.
func (s *Store) AppendBatch(ctx context.Context, table string, rows []repository.Row) error {
	defer s.Invalidate(table)
	return s.inner.AppendBatch(ctx, table, rows)
}

// OverwriteAll escribe e invalida la tabla.
func (s *Store) OverwriteAll(ctx context.Context, table string, rows []repository.Row) error {
	defer s.Invalidate(table)
	return s.inner.OverwriteAll(ctx, table, rows)
}

// EnsureTables delega e invalida todo.
func (s *Store) EnsureTables(ctx context.Context) error {
	defer s.InvalidateAll()
	return s.inner.EnsureTables(ctx)
}

// Invalidate descarta la tabla.
func (s *Store) Invalidate(table string) {
	s.mu.Lock()
	delete(s.entries, table)
	s.gen[table]++
	s.mu.Unlock()
}

// InvalidateAll descarta todas las tablas (p. ej. tras editar la hoja a mano).
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	for table := range s.entries {
		s.gen[table]++
	}
	for _, schema := range repository.Schemas() {
		s.gen[schema.Name]++
	}
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

func (s *Store) observe(table string, hit bool) {
	if s.observer != nil {
		s.observer.CacheLookup(table, hit)
	}
}

func cloneRows(rows []repository.Row) []repository.Row {
	out := make([]repository.Row, len(rows))
	for i, r := range rows {
		c := make(repository.Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
