package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	ClientName    string          `json:"client_name"`
	PaymentMethod string          `json:"payment_method,omitempty"` // Cash | Transfer | QRIS | Marketplace | Other
	Status        string          `json:"status,omitempty"`         // Request | Delivery | Pending Payment | Done
	TotalPurchase decimal.Decimal `json:"total_purchase"`
}

// ProductionRequest body para POST /api/production.
type ProductionRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// MaterialDeltaDTO descuento aplicado a una entrada de stock.
type MaterialDeltaDTO struct {
	MaterialName string          `json:"material_name"`
	SupplierName string          `json:"supplier_name"`
	Before       decimal.Decimal `json:"before"`
	Consumed     decimal.Decimal `json:"consumed"`
	After        decimal.Decimal `json:"after"`
}

// SalesOrderDTO fila de sales_orders.
type SalesOrderDTO struct {
	ReceiptID       string          `json:"receipt_id"`
	Date            time.Time       `json:"date"`
	ClientName      string          `json:"client_name"`
	ProductName     string          `json:"product_name"`
	ProductQuantity int             `json:"product_quantity"`
	TotalPurchase   decimal.Decimal `json:"total_purchase"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
}

// ConsumptionResponse resultado de venta o producción.
type ConsumptionResponse struct {
	OperationID string             `json:"operation_id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	Materials   []MaterialDeltaDTO `json:"materials"`
	Sale        *SalesOrderDTO     `json:"sale,omitempty"`
}
