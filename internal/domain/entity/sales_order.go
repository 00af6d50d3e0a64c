package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para SalesOrder.
const (
	SaleStatusRequest        = "Request"
	SaleStatusDelivery       = "Delivery"
	SaleStatusPendingPayment = "Pending Payment"
	SaleStatusDone           = "Done"
)

// Métodos de pago.
const (
	PaymentCash        = "Cash"
	PaymentTransfer    = "Transfer"
	PaymentQRIS        = "QRIS"
	PaymentMarketplace = "Marketplace"
	PaymentOther       = "Other"
)

// SalesOrder representa una fila de sales_orders.
type SalesOrder struct {
	ReceiptID       string
	Date            time.Time
	ClientName      string
	ProductName     string
	ProductQuantity int
	TotalPurchase   decimal.Decimal
	PaymentMethod   string
	Status          string
}

// ValidSaleStatus indica si s es un estado de venta conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusRequest, SaleStatusDelivery, SaleStatusPendingPayment, SaleStatusDone:
		return true
	}
	return false
}

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentQRIS, PaymentMarketplace, PaymentOther:
		return true
	}
	return false
}
