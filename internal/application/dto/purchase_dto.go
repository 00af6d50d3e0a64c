package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemDTO línea de compra.
type PurchaseItemDTO struct {
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierName  string            `json:"supplier_name"`
	Category      string            `json:"category,omitempty"` // Asset | Operational | Development
	SubCategory   string            `json:"sub_category,omitempty"`
	PaymentSystem string            `json:"payment_system,omitempty"`
	Status        string            `json:"status,omitempty"` // Paid | Pending
	Items         []PurchaseItemDTO `json:"items"`
}

// PurchaseOrderDTO fila de purchase_orders.
type PurchaseOrderDTO struct {
	PurchaseID    string          `json:"purchase_id"`
	Date          time.Time       `json:"date"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"sub_category"`
	SupplierName  string          `json:"supplier_name"`
	MaterialName  string          `json:"material_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Price         decimal.Decimal `json:"price"`
	PaymentSystem string          `json:"payment_system"`
	Status        string          `json:"status"`
}

// SkippedItemDTO ítem omitido en un ingreso.
type SkippedItemDTO struct {
	Index        int    `json:"index"`
	MaterialName string `json:"material_name"`
	Reason       string `json:"reason"`
}

// PurchaseResponse resultado del ingreso.
type PurchaseResponse struct {
	OperationID string             `json:"operation_id"`
	Orders      []PurchaseOrderDTO `json:"orders"`
	Skipped     []SkippedItemDTO   `json:"skipped"`
	Created     []StockDTO         `json:"created_materials"`
}
