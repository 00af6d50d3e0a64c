package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// StockView entrada de stock con la marca de stock bajo.
type StockView struct {
	entity.MaterialStock
	LowStock bool
}

// StockQueryUseCase listado y búsqueda de stock.
type StockQueryUseCase struct {
	inventory        repository.InventoryRepository
	defaultThreshold decimal.Decimal
}

// NewStockQueryUseCase construye el caso de uso; threshold es el umbral por defecto de stock bajo.
func NewStockQueryUseCase(inventory repository.InventoryRepository, threshold decimal.Decimal) *StockQueryUseCase {
	return &StockQueryUseCase{inventory: inventory, defaultThreshold: threshold}
}

// ListStock filtra por subcadena de material o proveedor, sin distinguir mayúsculas, y marca
// como bajo todo lo que esté en o por debajo del umbral. threshold nil usa el de configuración.
func (uc *StockQueryUseCase) ListStock(ctx context.Context, search string, threshold *decimal.Decimal) ([]StockView, error) {
	entries, err := uc.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	limit := uc.defaultThreshold
	if threshold != nil {
		limit = *threshold
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	out := make([]StockView, 0, len(entries))
	for _, e := range entries {
		if needle != "" &&
			!strings.Contains(fold.String(e.MaterialName), needle) &&
			!strings.Contains(fold.String(e.SupplierName), needle) {
			continue
		}
		out = append(out, StockView{MaterialStock: e, LowStock: e.CurrentStock.LessThanOrEqual(limit)})
	}
	return out, nil
}

// CountLow cuántas entradas están en o por debajo del umbral por defecto.
func (uc *StockQueryUseCase) CountLow(ctx context.Context) (int, error) {
	views, err := uc.ListStock(ctx, "", nil)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range views {
		if v.LowStock {
			n++
		}
	}
	return n, nil
}
