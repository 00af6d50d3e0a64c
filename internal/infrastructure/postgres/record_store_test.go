package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

func mustSchema(t *testing.T, table string) repository.TableSchema {
	t.Helper()
	s, err := repository.SchemaFor(table)
	require.NoError(t, err)
	return s
}

// ── SQL ────────────────────────────────────────────────────────────────────

func TestSelectAllSQL_ColumnasEnOrden(t *testing.T) {
	s := mustSchema(t, repository.TableInventoryStock)
	assert.Equal(t,
		`SELECT "material_id", "material_name", "supplier_name", "category", "current_stock", "unit_of_measure" FROM "inventory_stock" ORDER BY row_id`,
		selectAllSQL(s))
}

func TestInsertSQL_Placeholders(t *testing.T) {
	s := mustSchema(t, repository.TableProductsBOM)
	assert.Equal(t, `INSERT INTO "products_bom" ("product_name", "components") VALUES ($1, $2)`, insertSQL(s))
}

func TestDeleteAllSQL(t *testing.T) {
	s := mustSchema(t, repository.TableSalesOrders)
	assert.Equal(t, `DELETE FROM "sales_orders"`, deleteAllSQL(s))
}

// ── Valores ────────────────────────────────────────────────────────────────

func TestRowArgs_NumericosYVacios(t *testing.T) {
	s := mustSchema(t, repository.TableInventoryStock)
	args, err := rowArgs(s, repository.Row{
		"material_id":   "MAT-0001",
		"material_name": "Cera",
		"current_stock": " 12.50 ",
	})
	require.NoError(t, err)
	require.Len(t, args, 6)
	assert.Equal(t, "MAT-0001", args[0])
	assert.Equal(t, "", args[2], "columna ausente se guarda vacía")
	d, ok := args[4].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	args, err = rowArgs(s, repository.Row{"current_stock": ""})
	require.NoError(t, err)
	assert.Nil(t, args[4])
}

func TestRowArgs_NoNumerico(t *testing.T) {
	s := mustSchema(t, repository.TableInventoryStock)
	_, err := rowArgs(s, repository.Row{"current_stock": "doce"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsertBatch_UnaSentenciaPorFila(t *testing.T) {
	s := mustSchema(t, repository.TablePurchaseOrders)
	b, err := insertBatch(s, []repository.Row{{"purchase_id": "EVO-P-1"}, {"purchase_id": "EVO-P-2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	_, err = insertBatch(s, []repository.Row{{"quantity": "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Errores ────────────────────────────────────────────────────────────────

func TestMapErr_TablaInexistente(t *testing.T) {
	err := mapErr("sales_orders", &pgconn.PgError{Code: "42P01"})
	assert.ErrorIs(t, err, domain.ErrTableNotFound)

	other := errors.New("conexión cerrada")
	assert.Equal(t, other, mapErr("sales_orders", other))
}

func TestMigraciones_Embebidas(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/00001_record_tables.sql")
	require.NoError(t, err)
	for _, s := range repository.Schemas() {
		assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS "+s.Name)
		for _, c := range s.Columns {
			assert.Contains(t, string(data), c.Name)
		}
	}
}
