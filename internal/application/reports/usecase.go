// Package reports expone los datos crudos de ventas y compras filtrados por fecha, su
// exportación a planilla y la edición en bloque de esas filas.
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// Exporter genera el archivo descargable de un reporte.
type Exporter interface {
	Export(sheet string, header []string, rows [][]string) ([]byte, error)
}

// DateRange rango [From, To] en días completos; un extremo cero no limita.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange interpreta "2006-01-02". Vacío = sin límite.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.Local
	}
	var r DateRange
	var err error
	if strings.TrimSpace(from) != "" {
		if r.From, err = time.ParseInLocation(entity.DateLayout, strings.TrimSpace(from), loc); err != nil {
			return r, fmt.Errorf("%w: from %q no es una fecha AAAA-MM-DD", domain.ErrInvalidInput, from)
		}
	}
	if strings.TrimSpace(to) != "" {
		if r.To, err = time.ParseInLocation(entity.DateLayout, strings.TrimSpace(to), loc); err != nil {
			return r, fmt.Errorf("%w: to %q no es una fecha AAAA-MM-DD", domain.ErrInvalidInput, to)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return r, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return r, nil
}

// Bounded indica si el rango limita por algún extremo.
func (r DateRange) Bounded() bool { return !r.From.IsZero() || !r.To.IsZero() }

// Contains aplica [From, To+1día).
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ParseRowDate acepta fecha-hora o solo fecha.
func ParseRowDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{entity.DateTimeLayout, entity.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReportsUseCase lectura y edición de tablas de órdenes para la pantalla de reportes.
type ReportsUseCase struct {
	store    repository.RecordStore
	exporter Exporter
	loc      *time.Location
	lock     *inventory.WriteLock
}

// NewReportsUseCase construye el caso de uso. loc nil usa la zona local; lock debe ser el
// de los motores (nil crea uno propio).
func NewReportsUseCase(store repository.RecordStore, exporter Exporter, loc *time.Location, lock *inventory.WriteLock) *ReportsUseCase {
	if loc == nil {
		loc = time.Local
	}
	if lock == nil {
		lock = inventory.NewWriteLock()
	}
	return &ReportsUseCase{store: store, exporter: exporter, loc: loc, lock: lock}
}

// Location zona horaria con la que se interpretan las fechas.
func (uc *ReportsUseCase) Location() *time.Location { return uc.loc }

// ListSales filas de sales_orders dentro del rango.
func (uc *ReportsUseCase) ListSales(ctx context.Context, r DateRange) ([]repository.Row, error) {
	return uc.list(ctx, repository.TableSalesOrders, r)
}

// ListPurchases filas de purchase_orders dentro del rango.
func (uc *ReportsUseCase) ListPurchases(ctx context.Context, r DateRange) ([]repository.Row, error) {
	return uc.list(ctx, repository.TablePurchaseOrders, r)
}

// ExportSales planilla con las ventas del rango.
func (uc *ReportsUseCase) ExportSales(ctx context.Context, r DateRange) ([]byte, error) {
	return uc.export(ctx, repository.TableSalesOrders, r)
}

// ExportPurchases planilla con las compras del rango.
func (uc *ReportsUseCase) ExportPurchases(ctx context.Context, r DateRange) ([]byte, error) {
	return uc.export(ctx, repository.TablePurchaseOrders, r)
}

// ExportTable vuelca una tabla completa, sin filtro de fecha.
func (uc *ReportsUseCase) ExportTable(ctx context.Context, table string) ([]byte, error) {
	return uc.export(ctx, table, DateRange{})
}

// list: con rango, las filas cuya fecha no se puede interpretar quedan fuera.
func (uc *ReportsUseCase) list(ctx context.Context, table string, r DateRange) ([]repository.Row, error) {
	rows, err := uc.store.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}
	if !r.Bounded() {
		return rows, nil
	}
	out := make([]repository.Row, 0, len(rows))
	for _, row := range rows {
		t, ok := ParseRowDate(row["date"], uc.loc)
		if ok && r.Contains(t) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (uc *ReportsUseCase) export(ctx context.Context, table string, r DateRange) ([]byte, error) {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	rows, err := uc.list(ctx, table, r)
	if err != nil {
		return nil, err
	}
	header := schema.ColumnNames()
	values := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(header))
		for j, col := range header {
			line[j] = row[col]
		}
		values[i] = line
	}
	return uc.exporter.Export("Report", header, values)
}

// UpdateSales aplica ediciones a filas de sales_orders identificadas por receipt_id.
// Devuelve cuántas filas cambiaron.
func (uc *ReportsUseCase) UpdateSales(ctx context.Context, edits []repository.Row) (int, error) {
	return uc.update(ctx, repository.TableSalesOrders, edits)
}

// UpdatePurchases igual que UpdateSales sobre purchase_orders (purchase_id).
func (uc *ReportsUseCase) UpdatePurchases(ctx context.Context, edits []repository.Row) (int, error) {
	return uc.update(ctx, repository.TablePurchaseOrders, edits)
}

// update valida las ediciones, las aplica sobre la tabla completa y la escribe con una sola
// sobrescritura. El ID y la fecha son de solo lectura; las filas no editadas se escriben tal
// como se leyeron. Sin cambios no hay escritura.
func (uc *ReportsUseCase) update(ctx context.Context, table string, edits []repository.Row) (int, error) {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return 0, err
	}
	if len(edits) == 0 {
		return 0, fmt.Errorf("%w: no hay filas para actualizar", domain.ErrInvalidInput)
	}
	idCol := schema.IDColumn
	seen := make(map[string]bool, len(edits))
	for i, edit := range edits {
		id := strings.TrimSpace(edit[idCol])
		if id == "" {
			return 0, fmt.Errorf("%w: fila %d sin %s", domain.ErrInvalidInput, i+1, idCol)
		}
		if seen[id] {
			return 0, fmt.Errorf("%w: %s %s repetido", domain.ErrInvalidInput, idCol, id)
		}
		seen[id] = true
		for col, v := range edit {
			if !schema.Has(col) {
				return 0, fmt.Errorf("%w: columna desconocida %q", domain.ErrInvalidInput, col)
			}
			if schema.Numeric(col) && strings.TrimSpace(v) != "" {
				if _, err := decimal.NewFromString(strings.TrimSpace(v)); err != nil {
					return 0, fmt.Errorf("%w: %s %s: %s=%q no es un número", domain.ErrInvalidInput, idCol, id, col, v)
				}
			}
		}
	}

	uc.lock.Lock()
	defer uc.lock.Unlock()

	rows, err := uc.store.ReadAll(ctx, table)
	if err != nil {
		return 0, err
	}
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		if _, dup := index[id]; dup {
			index[id] = -1
			continue
		}
		index[id] = i
	}

	out := make([]repository.Row, len(rows))
	copy(out, rows)
	changed := 0
	for _, edit := range edits {
		id := strings.TrimSpace(edit[idCol])
		pos, ok := index[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s %s", domain.ErrNotFound, idCol, id)
		}
		if pos < 0 {
			return 0, fmt.Errorf("%w: %s %s aparece más de una vez en %s", domain.ErrInvalidInput, idCol, id, table)
		}
		current := out[pos]
		updated := make(repository.Row, len(current))
		for k, v := range current {
			updated[k] = v
		}
		diff := false
		for col, v := range edit {
			if col == idCol {
				continue
			}
			if schema.DateColumn(col) {
				if v != current[col] {
					return 0, fmt.Errorf("%w: %s %s: %s es de solo lectura", domain.ErrInvalidInput, idCol, id, col)
				}
				continue
			}
			if v != current[col] {
				updated[col] = v
				diff = true
			}
		}
		if diff {
			out[pos] = updated
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := uc.store.OverwriteAll(ctx, table, out); err != nil {
		return 0, &domain.StoreWriteError{Table: table, Err: err}
	}
	return changed, nil
}
