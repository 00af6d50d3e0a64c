// Package records implementa los repositorios tipados sobre un RecordStore: convierte
// filas textuales en entidades y viceversa.
package records

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// parseDecimal tolera espacios; vacío es cero. ok=false si el texto no es un número.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Las hojas suelen devolver enteros como "5.0".
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

func parseDate(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{entity.DateTimeLayout, entity.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateTimeLayout)
}

func stockFromRow(r repository.Row) (entity.MaterialStock, bool) {
	qty, ok := parseDecimal(r["current_stock"])
	return entity.MaterialStock{
		MaterialID:    strings.TrimSpace(r["material_id"]),
		MaterialName:  r["material_name"],
		SupplierName:  r["supplier_name"],
		Category:      r["category"],
		CurrentStock:  qty,
		UnitOfMeasure: r["unit_of_measure"],
	}, ok
}

func stockToRow(e entity.MaterialStock) repository.Row {
	return repository.Row{
		"material_id":     e.MaterialID,
		"material_name":   e.MaterialName,
		"supplier_name":   e.SupplierName,
		"category":        e.Category,
		"current_stock":   e.CurrentStock.String(),
		"unit_of_measure": e.UnitOfMeasure,
	}
}

func saleFromRow(r repository.Row, loc *time.Location) entity.SalesOrder {
	total, _ := parseDecimal(r["total_purchase"])
	return entity.SalesOrder{
		ReceiptID:       strings.TrimSpace(r["receipt_id"]),
		Date:            parseDate(r["date"], loc),
		ClientName:      r["client_name"],
		ProductName:     r["product_name"],
		ProductQuantity: parseInt(r["product_quantity"]),
		TotalPurchase:   total,
		PaymentMethod:   r["payment_method"],
		Status:          r["status"],
	}
}

func saleToRow(o entity.SalesOrder) repository.Row {
	return repository.Row{
		"receipt_id":       o.ReceiptID,
		"date":             formatDate(o.Date),
		"client_name":      o.ClientName,
		"product_name":     o.ProductName,
		"product_quantity": strconv.Itoa(o.ProductQuantity),
		"total_purchase":   o.TotalPurchase.String(),
		"payment_method":   o.PaymentMethod,
		"status":           o.Status,
	}
}

func purchaseFromRow(r repository.Row, loc *time.Location) entity.PurchaseOrder {
	qty, _ := parseDecimal(r["quantity"])
	price, _ := parseDecimal(r["price"])
	return entity.PurchaseOrder{
		PurchaseID:    strings.TrimSpace(r["purchase_id"]),
		Date:          parseDate(r["date"], loc),
		Category:      r["category"],
		SubCategory:   r["sub_category"],
		SupplierName:  r["supplier_name"],
		MaterialName:  r["material_name"],
		Quantity:      qty,
		UnitOfMeasure: r["unit_of_measure"],
		Price:         price,
		PaymentSystem: r["payment_system"],
		Status:        r["status"],
	}
}

func purchaseToRow(o entity.PurchaseOrder) repository.Row {
	return repository.Row{
		"purchase_id":     o.PurchaseID,
		"date":            formatDate(o.Date),
		"category":        o.Category,
		"sub_category":    o.SubCategory,
		"supplier_name":   o.SupplierName,
		"material_name":   o.MaterialName,
		"quantity":        o.Quantity.String(),
		"unit_of_measure": o.UnitOfMeasure,
		"price":           o.Price.String(),
		"payment_system":  o.PaymentSystem,
		"status":          o.Status,
	}
}
