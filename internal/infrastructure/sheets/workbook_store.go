// Package sheets implementa el almacén de registros sobre un libro .xlsx: una hoja por
// tabla, la primera fila es el encabezado y cada fila siguiente un registro.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// rawCells lee el valor guardado en la celda y no el texto con formato de número o fecha.
var rawCells = excelize.Options{RawCellValue: true}

// WorkbookStore implementa repository.RecordStore. Cada llamada abre, modifica y guarda el
// archivo; el guardado pasa por un archivo temporal y un rename.
type WorkbookStore struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

var _ repository.RecordStore = (*WorkbookStore)(nil)

// NewWorkbookStore crea el adaptador. El archivo se crea en EnsureTables.
func NewWorkbookStore(path string, log *logger.Logger) *WorkbookStore {
	if log == nil {
		log = logger.Nop()
	}
	return &WorkbookStore{path: path, log: log.WithComponent("workbook")}
}

// Path ruta del libro.
func (s *WorkbookStore) Path() string { return s.path }

// ReadAll lee todas las filas de datos. Las filas vacías se omiten.
func (s *WorkbookStore) ReadAll(ctx context.Context, table string) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := s.sheetRows(f, table)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []repository.Row{}, nil
	}
	header := rows[0]
	out := make([]repository.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(repository.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = cells[i]
				if schema.DateColumn(col) {
					row[col] = dateText(cells[i])
				}
			} else {
				row[col] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Append agrega una fila al final de la hoja.
func (s *WorkbookStore) Append(ctx context.Context, table string, row repository.Row) error {
	return s.AppendBatch(ctx, table, []repository.Row{row})
}

// AppendBatch agrega las filas en orden y guarda una sola vez.
func (s *WorkbookStore) AppendBatch(ctx context.Context, table string, rows []repository.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return s.mutate(ctx, table, func(f *excelize.File, header []string, existing int) error {
		for i, row := range rows {
			if err := writeRow(f, table, existing+1+i, header, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// OverwriteAll reescribe las filas de datos; el encabezado se conserva y las filas sobrantes
// se eliminan desde abajo.
func (s *WorkbookStore) OverwriteAll(ctx context.Context, table string, rows []repository.Row) error {
	return s.mutate(ctx, table, func(f *excelize.File, header []string, existing int) error {
		for i, row := range rows {
			if err := writeRow(f, table, 2+i, header, row); err != nil {
				return err
			}
		}
		// existing cuenta filas de datos; la última fila ocupada es existing+1.
		for r := existing + 1; r > len(rows)+1; r-- {
			if err := f.RemoveRow(table, r); err != nil {
				return fmt.Errorf("eliminar fila %d de %s: %w", r, table, err)
			}
		}
		return nil
	})
}

// EnsureTables crea el libro si no existe, agrega las hojas ausentes y completa los
// encabezados a los que les falten columnas.
func (s *WorkbookStore) EnsureTables(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var f *excelize.File
	fresh := false
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		fresh = true
	} else {
		if f, err = s.open(); err != nil {
			return err
		}
	}
	defer func() { _ = f.Close() }()

	changed := fresh
	for i, schema := range repository.Schemas() {
		idx, err := f.GetSheetIndex(schema.Name)
		if err != nil {
			return fmt.Errorf("buscar hoja %s: %w", schema.Name, err)
		}
		if idx < 0 {
			if fresh && i == 0 {
				if err := f.SetSheetName(f.GetSheetName(0), schema.Name); err != nil {
					return fmt.Errorf("renombrar hoja inicial: %w", err)
				}
			} else if _, err := f.NewSheet(schema.Name); err != nil {
				return fmt.Errorf("crear hoja %s: %w", schema.Name, err)
			}
			s.log.Info().Str("table", schema.Name).Msg("tabla creada")
			changed = true
		}
		_, added, err := ensureHeader(f, schema)
		if err != nil {
			return err
		}
		if added {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(f)
}

// mutate abre el libro, asegura el encabezado de la tabla, ejecuta fn y guarda.
func (s *WorkbookStore) mutate(ctx context.Context, table string, fn func(f *excelize.File, header []string, existing int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := s.sheetRows(f, table); err != nil {
		return err
	}
	header, _, err := ensureHeader(f, schema)
	if err != nil {
		return err
	}
	rows, err := f.GetRows(table, rawCells)
	if err != nil {
		return fmt.Errorf("leer hoja %s: %w", table, err)
	}
	existing := len(rows) - 1
	if existing < 0 {
		existing = 0
	}
	if err := fn(f, header, existing); err != nil {
		return err
	}
	return s.save(f)
}

func (s *WorkbookStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: libro %s no existe", domain.ErrTableNotFound, s.path)
		}
		return nil, fmt.Errorf("abrir libro %s: %w", s.path, err)
	}
	return f, nil
}

func (s *WorkbookStore) sheetRows(f *excelize.File, table string) ([][]string, error) {
	idx, err := f.GetSheetIndex(table)
	if err != nil {
		return nil, fmt.Errorf("buscar hoja %s: %w", table, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	rows, err := f.GetRows(table, rawCells)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", table, err)
	}
	return rows, nil
}

func (s *WorkbookStore) save(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp.xlsx")
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("guardar libro: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("reemplazar libro: %w", err)
	}
	return nil
}

// ensureHeader devuelve el encabezado de la hoja; si está vacío escribe el del esquema y si
// le faltan columnas del esquema las agrega al final.
func ensureHeader(f *excelize.File, schema repository.TableSchema) ([]string, bool, error) {
	rows, err := f.GetRows(schema.Name, rawCells)
	if err != nil {
		return nil, false, fmt.Errorf("leer hoja %s: %w", schema.Name, err)
	}
	var header []string
	if len(rows) > 0 {
		header = append(header, rows[0]...)
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	added := false
	for _, col := range schema.ColumnNames() {
		if !present[col] {
			header = append(header, col)
			added = true
		}
	}
	if !added {
		return header, false, nil
	}
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := f.SetSheetRow(schema.Name, "A1", &values); err != nil {
		return nil, false, fmt.Errorf("escribir encabezado de %s: %w", schema.Name, err)
	}
	return header, true, nil
}

func writeRow(f *excelize.File, table string, rowNum int, header []string, row repository.Row) error {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(header))
	for i, col := range header {
		values[i] = cellValue(row[col], schema.Numeric(col))
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(table, cell, &values); err != nil {
		return fmt.Errorf("escribir fila %d de %s: %w", rowNum, table, err)
	}
	return nil
}

// cellValue escribe como número las columnas numéricas cuyo texto vuelve idéntico desde
// float64; así la celda conserva el formato de número que le haya dado el operador.
func cellValue(v string, numeric bool) interface{} {
	if !numeric || v == "" {
		return v
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || strconv.FormatFloat(n, 'f', -1, 64) != v {
		return v
	}
	return n
}

// dateText convierte el número de serie de una celda con formato de fecha al texto que
// escribe la aplicación. Cualquier otro valor se devuelve igual.
func dateText(v string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial <= 0 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Round(time.Second).Format(entity.DateTimeLayout)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
