package dto

import "github.com/shopspring/decimal"

// StockDTO fila de inventory_stock.
type StockDTO struct {
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	SupplierName  string          `json:"supplier_name"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	LowStock      bool            `json:"low_stock"`
}
