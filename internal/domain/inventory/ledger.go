// Package inventory contiene el Stock Ledger: copia en memoria de inventory_stock durante
// una operación. Nunca escribe en el almacén; quien lo usa persiste Entries() al final.
package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/sequence"
)

// Requirement cantidad pedida de una entrada de stock.
type Requirement struct {
	Material string
	Supplier string
	Quantity decimal.Decimal
}

// Delta resultado de CheckAndReserve para una entrada afectada.
type Delta struct {
	Key      entity.StockKey
	Before   decimal.Decimal
	Consumed decimal.Decimal
	After    decimal.Decimal
}

// Ledger es el snapshot mutable. No es seguro para uso concurrente.
type Ledger struct {
	entries []entity.MaterialStock
	index   map[entity.StockKey]int
	ids     *sequence.Allocator
}

// NewLedger copia el snapshot. Si una clave aparece repetida, la primera fila es la que
// se consulta y modifica; las demás se conservan tal cual. ids asigna material_id a las
// entradas nuevas y puede ser nil si el ledger solo se usa para consumo.
func NewLedger(snapshot []entity.MaterialStock, ids *sequence.Allocator) *Ledger {
	l := &Ledger{
		entries: make([]entity.MaterialStock, len(snapshot)),
		index:   make(map[entity.StockKey]int, len(snapshot)),
		ids:     ids,
	}
	copy(l.entries, snapshot)
	for i, e := range l.entries {
		if _, dup := l.index[e.Key()]; !dup {
			l.index[e.Key()] = i
		}
	}
	return l
}

// MaterialIDs devuelve los material_id del snapshot, para construir el asignador.
func MaterialIDs(snapshot []entity.MaterialStock) []string {
	ids := make([]string, len(snapshot))
	for i, e := range snapshot {
		ids[i] = e.MaterialID
	}
	return ids
}

// Lookup busca la entrada (material, proveedor).
func (l *Ledger) Lookup(material, supplier string) (entity.MaterialStock, bool) {
	i, ok := l.index[entity.StockKey{Material: material, Supplier: supplier}]
	if !ok {
		return entity.MaterialStock{}, false
	}
	return l.entries[i], true
}

// CheckAndReserve evalúa los requerimientos en orden contra el snapshot actual.
// Las cantidades repetidas para una misma clave se acumulan antes de comparar.
// Devuelve el primer fallo (*domain.MaterialNotFoundError o *domain.InsufficientStockError)
// sin modificar nada; si todo alcanza, un Delta por entrada afectada, en orden de aparición.
func (l *Ledger) CheckAndReserve(reqs []Requirement) ([]Delta, error) {
	running := make(map[entity.StockKey]decimal.Decimal, len(reqs))
	order := make([]entity.StockKey, 0, len(reqs))

	for _, r := range reqs {
		if !r.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad requerida de %q debe ser positiva", domain.ErrInvalidInput, r.Material)
		}
		key := entity.StockKey{Material: r.Material, Supplier: r.Supplier}
		i, ok := l.index[key]
		if !ok {
			return nil, &domain.MaterialNotFoundError{Material: r.Material, Supplier: r.Supplier}
		}
		prev, seen := running[key]
		if !seen {
			order = append(order, key)
		}
		total := prev.Add(r.Quantity)
		available := l.entries[i].CurrentStock
		if total.GreaterThan(available) {
			return nil, &domain.InsufficientStockError{
				Material:  r.Material,
				Supplier:  r.Supplier,
				Needed:    total,
				Available: available,
			}
		}
		running[key] = total
	}

	deltas := make([]Delta, 0, len(order))
	for _, key := range order {
		before := l.entries[l.index[key]].CurrentStock
		consumed := running[key]
		deltas = append(deltas, Delta{
			Key:      key,
			Before:   before,
			Consumed: consumed,
			After:    before.Sub(consumed),
		})
	}
	return deltas, nil
}

// Apply escribe los deltas en el snapshot. Rechaza deltas calculados sobre otro estado,
// validando todo antes de tocar nada.
func (l *Ledger) Apply(deltas []Delta) error {
	for _, d := range deltas {
		i, ok := l.index[d.Key]
		if !ok {
			return &domain.MaterialNotFoundError{Material: d.Key.Material, Supplier: d.Key.Supplier}
		}
		if !l.entries[i].CurrentStock.Equal(d.Before) {
			return fmt.Errorf("%w: delta obsoleto para %q", domain.ErrInvalidInput, d.Key.Material)
		}
		if d.After.IsNegative() {
			return &domain.InsufficientStockError{
				Material:  d.Key.Material,
				Supplier:  d.Key.Supplier,
				Needed:    d.Consumed,
				Available: d.Before,
			}
		}
	}
	for _, d := range deltas {
		l.entries[l.index[d.Key]].CurrentStock = d.After
	}
	return nil
}

// Upsert suma quantity a la entrada existente o crea una nueva con material_id asignado.
// Para crear, quantity debe ser positiva; una corrección que deje el stock negativo se rechaza.
func (l *Ledger) Upsert(material, supplier string, quantity decimal.Decimal, category, unit string) (entity.MaterialStock, bool, error) {
	if strings.TrimSpace(material) == "" {
		return entity.MaterialStock{}, false, fmt.Errorf("%w: material_name requerido", domain.ErrInvalidInput)
	}
	key := entity.StockKey{Material: material, Supplier: supplier}
	if i, ok := l.index[key]; ok {
		next := l.entries[i].CurrentStock.Add(quantity)
		if next.IsNegative() {
			return entity.MaterialStock{}, false, &domain.InsufficientStockError{
				Material:  material,
				Supplier:  supplier,
				Needed:    quantity.Neg(),
				Available: l.entries[i].CurrentStock,
			}
		}
		l.entries[i].CurrentStock = next
		return l.entries[i], false, nil
	}

	if !quantity.IsPositive() {
		return entity.MaterialStock{}, false, fmt.Errorf("%w: cantidad inicial de %q debe ser positiva", domain.ErrInvalidInput, material)
	}
	if l.ids == nil {
		return entity.MaterialStock{}, false, fmt.Errorf("ledger sin asignador de material_id")
	}
	e := entity.MaterialStock{
		MaterialID:    l.ids.Next(),
		MaterialName:  material,
		SupplierName:  supplier,
		Category:      category,
		CurrentStock:  quantity,
		UnitOfMeasure: unit,
	}
	l.entries = append(l.entries, e)
	l.index[key] = len(l.entries) - 1
	return e, true, nil
}

// Entries copia del estado actual, en el orden original con las nuevas al final.
func (l *Ledger) Entries() []entity.MaterialStock {
	out := make([]entity.MaterialStock, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len número de filas (incluye duplicados del snapshot).
func (l *Ledger) Len() int { return len(l.entries) }
