package entity

import "github.com/shopspring/decimal"

// Categorías de stock usadas por el negocio. La categoría es texto libre en la
// hoja; estas son las que ofrece el formulario.
const (
	CategoryRawMaterial = "Raw Material"
	CategoryAsset       = "Asset"
	CategoryPackaging   = "Packaging"
)

// MaterialStock es una fila de inventory_stock. La identidad es (MaterialName, SupplierName);
// MaterialID es solo una etiqueta visible.
type MaterialStock struct {
	MaterialID    string
	MaterialName  string
	SupplierName  string
	Category      string
	CurrentStock  decimal.Decimal // nunca negativo tras un consumo
	UnitOfMeasure string
}

// StockKey identifica una entrada de stock.
type StockKey struct {
	Material string
	Supplier string
}

// Key devuelve la identidad de la entrada.
func (m MaterialStock) Key() StockKey {
	return StockKey{Material: m.MaterialName, Supplier: m.SupplierName}
}
