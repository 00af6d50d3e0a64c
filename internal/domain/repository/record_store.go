package repository

import "context"

// Nombres de tabla del almacén de registros.
const (
	TableSalesOrders    = "sales_orders"
	TablePurchaseOrders = "purchase_orders"
	TableInventoryStock = "inventory_stock"
	TableProductsBOM    = "products_bom"
)

// Row es una fila semiestructurada: columna -> valor textual.
// Las columnas ausentes se leen como cadena vacía.
type Row map[string]string

// RecordStore es el puerto hacia la hoja de cálculo (o cualquier backend tabular).
// Las operaciones bloquean hasta completar la E/S; no hay reintentos ni transacciones
// entre llamadas.
type RecordStore interface {
	ReadAll(ctx context.Context, table string) ([]Row, error)
	Append(ctx context.Context, table string, row Row) error
	AppendBatch(ctx context.Context, table string, rows []Row) error
	// OverwriteAll reemplaza todas las filas de datos de la tabla (el encabezado se conserva).
	OverwriteAll(ctx context.Context, table string, rows []Row) error
	// EnsureTables crea las tablas ausentes con su fila de encabezado.
	EnsureTables(ctx context.Context) error
}
