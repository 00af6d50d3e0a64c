package entity

import "github.com/shopspring/decimal"

// Component es un insumo de la receta, cantidad por una unidad de producto.
type Component struct {
	MaterialName   string
	SupplierName   string
	QuantityNeeded decimal.Decimal
}

// Recipe es la lista de materiales (BOM) de un producto terminado.
type Recipe struct {
	ProductName string
	Components  []Component
}
