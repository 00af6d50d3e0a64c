package repository

import (
	"fmt"

	"github.com/jhoicas/evodia-api/internal/domain"
)

// Column describe una columna de tabla.
type Column struct {
	Name    string
	Numeric bool
	Date    bool // texto "2006-01-02 15:04:05"
}

// TableSchema columnas en orden de encabezado. IDColumn vacío si la tabla no usa IDs secuenciales.
type TableSchema struct {
	Name     string
	IDColumn string
	Columns  []Column
}

// ColumnNames devuelve los nombres en orden.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Numeric indica si la columna guarda cantidades o montos.
func (s TableSchema) Numeric(column string) bool {
	for _, c := range s.Columns {
		if c.Name == column {
			return c.Numeric
		}
	}
	return false
}

// DateColumn indica si la columna guarda fechas.
func (s TableSchema) DateColumn(column string) bool {
	for _, c := range s.Columns {
		if c.Name == column {
			return c.Date
		}
	}
	return false
}

// Has indica si la tabla tiene la columna.
func (s TableSchema) Has(column string) bool {
	for _, c := range s.Columns {
		if c.Name == column {
			return true
		}
	}
	return false
}

var schemas = []TableSchema{
	{
		Name:     TableSalesOrders,
		IDColumn: "receipt_id",
		Columns: []Column{
			{Name: "receipt_id"},
			{Name: "date", Date: true},
			{Name: "client_name"},
			{Name: "product_name"},
			{Name: "product_quantity", Numeric: true},
			{Name: "total_purchase", Numeric: true},
			{Name: "payment_method"},
			{Name: "status"},
		},
	},
	{
		Name:     TablePurchaseOrders,
		IDColumn: "purchase_id",
		Columns: []Column{
			{Name: "purchase_id"},
			{Name: "date", Date: true},
			{Name: "category"},
			{Name: "sub_category"},
			{Name: "supplier_name"},
			{Name: "material_name"},
			{Name: "quantity", Numeric: true},
			{Name: "unit_of_measure"},
			{Name: "price", Numeric: true},
			{Name: "payment_system"},
			{Name: "status"},
		},
	},
	{
		Name:     TableInventoryStock,
		IDColumn: "material_id",
		Columns: []Column{
			{Name: "material_id"},
			{Name: "material_name"},
			{Name: "supplier_name"},
			{Name: "category"},
			{Name: "current_stock", Numeric: true},
			{Name: "unit_of_measure"},
		},
	},
	{
		Name: TableProductsBOM,
		Columns: []Column{
			{Name: "product_name"},
			{Name: "components"},
		},
	},
}

// Schemas devuelve todas las tablas conocidas, en orden de creación.
func Schemas() []TableSchema {
	out := make([]TableSchema, len(schemas))
	copy(out, schemas)
	return out
}

// SchemaFor busca el esquema de una tabla. Los adaptadores lo usan como lista blanca
// de nombres de tabla y columna.
func SchemaFor(table string) (TableSchema, error) {
	for _, s := range schemas {
		if s.Name == table {
			return s, nil
		}
	}
	return TableSchema{}, fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
}
