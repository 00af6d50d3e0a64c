package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de compra.
const (
	PurchaseStatusPaid    = "Paid"
	PurchaseStatusPending = "Pending"
)

// Categorías de compra.
const (
	PurchaseCategoryAsset       = "Asset"
	PurchaseCategoryOperational = "Operational"
	PurchaseCategoryDevelopment = "Development"
)

// PurchaseOrder representa una fila de purchase_orders (un ítem por fila).
type PurchaseOrder struct {
	PurchaseID    string
	Date          time.Time
	Category      string
	SubCategory   string
	SupplierName  string
	MaterialName  string
	Quantity      decimal.Decimal
	UnitOfMeasure string
	Price         decimal.Decimal
	PaymentSystem string
	Status        string
}
