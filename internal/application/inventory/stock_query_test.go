package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

func stockForQuery() []entity.MaterialStock {
	return []entity.MaterialStock{
		{MaterialID: "MAT-0001", MaterialName: "Methanol", SupplierName: "SupplierX", CurrentStock: dec("100")},
		{MaterialID: "MAT-0002", MaterialName: "Bottle", SupplierName: "GlassCo", CurrentStock: dec("10")},
		{MaterialID: "MAT-0003", MaterialName: "Oud Oil", SupplierName: "Müller", CurrentStock: dec("2.5")},
	}
}

func TestListStock_BusquedaSinMayusculas(t *testing.T) {
	uc := appinv.NewStockQueryUseCase(&fakeInventory{entries: stockForQuery()}, dec("10"))

	views, err := uc.ListStock(context.Background(), "methANOL", nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "MAT-0001", views[0].MaterialID)

	views, err = uc.ListStock(context.Background(), "glassco", nil)
	require.NoError(t, err)
	require.Len(t, views, 1, "también busca por proveedor")

	views, err = uc.ListStock(context.Background(), "MÜLLER", nil)
	require.NoError(t, err)
	require.Len(t, views, 1, "plegado fuera de ASCII")
}

func TestListStock_MarcaStockBajo(t *testing.T) {
	uc := appinv.NewStockQueryUseCase(&fakeInventory{entries: stockForQuery()}, dec("10"))

	views, err := uc.ListStock(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.False(t, views[0].LowStock)
	assert.True(t, views[1].LowStock, "en el umbral cuenta como bajo")
	assert.True(t, views[2].LowStock)

	custom := dec("1")
	views, err = uc.ListStock(context.Background(), "", &custom)
	require.NoError(t, err)
	assert.False(t, views[2].LowStock)

	n, err := uc.CountLow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
