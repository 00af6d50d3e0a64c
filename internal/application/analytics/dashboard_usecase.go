// Package analytics contiene el resumen de la portada.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// LowStockCounter cuenta entradas en o bajo el umbral de stock.
type LowStockCounter interface {
	CountLow(ctx context.Context) (int, error)
}

// DashboardUseCase genera los conteos de la portada.
//
// Fuente de datos: RecordStore (solo lectura). Las tablas se leen en paralelo.
type DashboardUseCase struct {
	store    repository.RecordStore
	lowStock LowStockCounter
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store repository.RecordStore, lowStock LowStockCounter) *DashboardUseCase {
	return &DashboardUseCase{store: store, lowStock: lowStock}
}

// GetSummary cuenta filas de cada tabla y entradas con stock bajo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		table string
		n     int
		err   error
	}

	tables := []string{
		repository.TableSalesOrders,
		repository.TablePurchaseOrders,
		repository.TableInventoryStock,
		repository.TableProductsBOM,
	}
	results := make(chan countResult, len(tables)+1)
	for _, table := range tables {
		go func(table string) {
			rows, err := uc.store.ReadAll(ctx, table)
			results <- countResult{table: table, n: len(rows), err: err}
		}(table)
	}
	go func() {
		n, err := uc.lowStock.CountLow(ctx)
		results <- countResult{table: "low_stock", n: n, err: err}
	}()

	counts := make(map[string]int, len(tables)+1)
	var firstErr error
	for i := 0; i < len(tables)+1; i++ {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("dashboard %s: %w", r.table, r.err)
		}
		counts[r.table] = r.n
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return &dto.DashboardSummaryDTO{
		SalesOrders:    counts[repository.TableSalesOrders],
		PurchaseOrders: counts[repository.TablePurchaseOrders],
		InventoryItems: counts[repository.TableInventoryStock],
		Recipes:        counts[repository.TableProductsBOM],
		LowStockItems:  counts["low_stock"],
	}, nil
}
