package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// InventoryRepository sobre inventory_stock.
type InventoryRepository struct {
	store repository.RecordStore
	log   *logger.Logger
}

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(store repository.RecordStore, log *logger.Logger) *InventoryRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryRepository{store: store, log: log.WithComponent("inventory_records")}
}

// List lee todas las entradas. Un current_stock que no es número aborta la lectura con
// domain.ErrCorruptRecord: reescribir la tabla con ese valor perdería el stock real.
func (r *InventoryRepository) List(ctx context.Context) ([]entity.MaterialStock, error) {
	rows, err := r.store.ReadAll(ctx, repository.TableInventoryStock)
	if err != nil {
		return nil, err
	}
	out := make([]entity.MaterialStock, 0, len(rows))
	for _, row := range rows {
		e, ok := stockFromRow(row)
		if !ok {
			r.log.Error().Str("material_id", e.MaterialID).Str("value", row["current_stock"]).Msg("current_stock ilegible")
			return nil, fmt.Errorf("%w: current_stock %q de %s (%s / %s)", domain.ErrCorruptRecord,
				row["current_stock"], e.MaterialID, e.MaterialName, e.SupplierName)
		}
		out = append(out, e)
	}
	return out, nil
}

// ReplaceAll una sola sobrescritura de la tabla.
func (r *InventoryRepository) ReplaceAll(ctx context.Context, entries []entity.MaterialStock) error {
	rows := make([]repository.Row, len(entries))
	for i, e := range entries {
		rows[i] = stockToRow(e)
	}
	return r.store.OverwriteAll(ctx, repository.TableInventoryStock, rows)
}

// RecipeRepository sobre products_bom.
type RecipeRepository struct {
	store repository.RecordStore
}

// NewRecipeRepository construye el repositorio.
func NewRecipeRepository(store repository.RecordStore) *RecipeRepository {
	return &RecipeRepository{store: store}
}

// GetEncoded devuelve components de la primera fila del producto o domain.ErrNotFound.
func (r *RecipeRepository) GetEncoded(ctx context.Context, productName string) (string, error) {
	rows, err := r.store.ReadAll(ctx, repository.TableProductsBOM)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if strings.TrimSpace(row["product_name"]) == productName {
			return row["components"], nil
		}
	}
	return "", domain.ErrNotFound
}

// ListEncoded todas las filas con nombre de producto.
func (r *RecipeRepository) ListEncoded(ctx context.Context) ([]repository.EncodedRecipe, error) {
	rows, err := r.store.ReadAll(ctx, repository.TableProductsBOM)
	if err != nil {
		return nil, err
	}
	out := make([]repository.EncodedRecipe, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row["product_name"])
		if name == "" {
			continue
		}
		out = append(out, repository.EncodedRecipe{ProductName: name, Components: row["components"]})
	}
	return out, nil
}

// SaveEncoded reemplaza la fila del producto (sobrescritura) o la agrega si no existe.
func (r *RecipeRepository) SaveEncoded(ctx context.Context, productName, components string) error {
	rows, err := r.store.ReadAll(ctx, repository.TableProductsBOM)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if strings.TrimSpace(row["product_name"]) == productName {
			rows[i]["components"] = components
			return r.store.OverwriteAll(ctx, repository.TableProductsBOM, rows)
		}
	}
	return r.store.Append(ctx, repository.TableProductsBOM, repository.Row{
		"product_name": productName,
		"components":   components,
	})
}

// SalesOrderRepository sobre sales_orders.
type SalesOrderRepository struct {
	store repository.RecordStore
	loc   *time.Location
}

// NewSalesOrderRepository construye el repositorio; loc interpreta las fechas (nil = local).
func NewSalesOrderRepository(store repository.RecordStore, loc *time.Location) *SalesOrderRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SalesOrderRepository{store: store, loc: loc}
}

// ListIDs receipt_id de todas las filas.
func (r *SalesOrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.store, repository.TableSalesOrders, "receipt_id")
}

// Append agrega la orden.
func (r *SalesOrderRepository) Append(ctx context.Context, order entity.SalesOrder) error {
	return r.store.Append(ctx, repository.TableSalesOrders, saleToRow(order))
}

// List todas las órdenes.
func (r *SalesOrderRepository) List(ctx context.Context) ([]entity.SalesOrder, error) {
	rows, err := r.store.ReadAll(ctx, repository.TableSalesOrders)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SalesOrder, len(rows))
	for i, row := range rows {
		out[i] = saleFromRow(row, r.loc)
	}
	return out, nil
}

// GetByID busca por receipt_id.
func (r *SalesOrderRepository) GetByID(ctx context.Context, receiptID string) (*entity.SalesOrder, error) {
	rows, err := r.store.ReadAll(ctx, repository.TableSalesOrders)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if strings.TrimSpace(row["receipt_id"]) == receiptID {
			o := saleFromRow(row, r.loc)
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, receiptID)
}

// PurchaseOrderRepository sobre purchase_orders.
type PurchaseOrderRepository struct {
	store repository.RecordStore
	loc   *time.Location
}

// NewPurchaseOrderRepository construye el repositorio.
func NewPurchaseOrderRepository(store repository.RecordStore, loc *time.Location) *PurchaseOrderRepository {
	if loc == nil {
		loc = time.Local
	}
	return &PurchaseOrderRepository{store: store, loc: loc}
}

// ListIDs purchase_id de todas las filas.
func (r *PurchaseOrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.store, repository.TablePurchaseOrders, "purchase_id")
}

// AppendBatch agrega todas las órdenes en una llamada.
func (r *PurchaseOrderRepository) AppendBatch(ctx context.Context, orders []entity.PurchaseOrder) error {
	rows := make([]repository.Row, len(orders))
	for i, o := range orders {
		rows[i] = purchaseToRow(o)
	}
	return r.store.AppendBatch(ctx, repository.TablePurchaseOrders, rows)
}

// List todas las órdenes.
func (r *PurchaseOrderRepository) List(ctx context.Context) ([]entity.PurchaseOrder, error) {
	rows, err := r.store.ReadAll(ctx, repository.TablePurchaseOrders)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PurchaseOrder, len(rows))
	for i, row := range rows {
		out[i] = purchaseFromRow(row, r.loc)
	}
	return out, nil
}

func listIDs(ctx context.Context, store repository.RecordStore, table, column string) ([]string, error) {
	rows, err := store.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := strings.TrimSpace(row[column]); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
