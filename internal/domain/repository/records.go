package repository

import (
	"context"

	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

// InventoryRepository puerto tipado sobre inventory_stock.
type InventoryRepository interface {
	List(ctx context.Context) ([]entity.MaterialStock, error)
	// ReplaceAll persiste el ledger completo en una sola sobrescritura.
	ReplaceAll(ctx context.Context, entries []entity.MaterialStock) error
}

// EncodedRecipe es la fila cruda de products_bom, sin decodificar.
type EncodedRecipe struct {
	ProductName string
	Components  string
}

// RecipeRepository puerto sobre products_bom. Devuelve el texto codificado; decodificar
// es responsabilidad del resolver.
type RecipeRepository interface {
	GetEncoded(ctx context.Context, productName string) (string, error)
	ListEncoded(ctx context.Context) ([]EncodedRecipe, error)
	SaveEncoded(ctx context.Context, productName, components string) error
}

// SalesOrderRepository puerto sobre sales_orders.
type SalesOrderRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	Append(ctx context.Context, order entity.SalesOrder) error
	List(ctx context.Context) ([]entity.SalesOrder, error)
	GetByID(ctx context.Context, receiptID string) (*entity.SalesOrder, error)
}

// PurchaseOrderRepository puerto sobre purchase_orders.
type PurchaseOrderRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	AppendBatch(ctx context.Context, orders []entity.PurchaseOrder) error
	List(ctx context.Context) ([]entity.PurchaseOrder, error)
}
