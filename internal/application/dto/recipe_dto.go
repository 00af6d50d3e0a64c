package dto

import "github.com/shopspring/decimal"

// ComponentDTO insumo por unidad de producto.
type ComponentDTO struct {
	MaterialName   string          `json:"material_name"`
	SupplierName   string          `json:"supplier_name"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// RecipeDTO receta decodificada. Error se llena cuando la fila existe pero está corrupta.
type RecipeDTO struct {
	ProductName string         `json:"product_name"`
	Components  []ComponentDTO `json:"components"`
	Error       string         `json:"error,omitempty"`
}

// SaveRecipeRequest body para PUT /api/recipes/:product.
type SaveRecipeRequest struct {
	Components []ComponentDTO `json:"components"`
}
