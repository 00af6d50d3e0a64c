package http

import (
	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

func toConsumptionResponse(res *inventory.ConsumeResult) dto.ConsumptionResponse {
	out := dto.ConsumptionResponse{
		OperationID: res.OperationID,
		ProductName: res.ProductName,
		Quantity:    res.Quantity,
		Materials:   make([]dto.MaterialDeltaDTO, len(res.Deltas)),
	}
	for i, d := range res.Deltas {
		out.Materials[i] = dto.MaterialDeltaDTO{
			MaterialName: d.Key.Material,
			SupplierName: d.Key.Supplier,
			Before:       d.Before,
			Consumed:     d.Consumed,
			After:        d.After,
		}
	}
	if res.Sale != nil {
		s := toSalesOrderDTO(*res.Sale)
		out.Sale = &s
	}
	return out
}

func toSalesOrderDTO(o entity.SalesOrder) dto.SalesOrderDTO {
	return dto.SalesOrderDTO{
		ReceiptID:       o.ReceiptID,
		Date:            o.Date,
		ClientName:      o.ClientName,
		ProductName:     o.ProductName,
		ProductQuantity: o.ProductQuantity,
		TotalPurchase:   o.TotalPurchase,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
	}
}

func toPurchaseResponse(res *inventory.IntakeResult) dto.PurchaseResponse {
	out := dto.PurchaseResponse{
		OperationID: res.OperationID,
		Orders:      make([]dto.PurchaseOrderDTO, len(res.Orders)),
		Skipped:     make([]dto.SkippedItemDTO, len(res.Skipped)),
		Created:     make([]dto.StockDTO, len(res.Created)),
	}
	for i, o := range res.Orders {
		out.Orders[i] = dto.PurchaseOrderDTO{
			PurchaseID:    o.PurchaseID,
			Date:          o.Date,
			Category:      o.Category,
			SubCategory:   o.SubCategory,
			SupplierName:  o.SupplierName,
			MaterialName:  o.MaterialName,
			Quantity:      o.Quantity,
			UnitOfMeasure: o.UnitOfMeasure,
			Price:         o.Price,
			PaymentSystem: o.PaymentSystem,
			Status:        o.Status,
		}
	}
	for i, s := range res.Skipped {
		out.Skipped[i] = dto.SkippedItemDTO{Index: s.Index, MaterialName: s.MaterialName, Reason: s.Reason}
	}
	for i, m := range res.Created {
		out.Created[i] = toStockDTO(m, false)
	}
	return out
}

func toStockDTO(m entity.MaterialStock, low bool) dto.StockDTO {
	return dto.StockDTO{
		MaterialID:    m.MaterialID,
		MaterialName:  m.MaterialName,
		SupplierName:  m.SupplierName,
		Category:      m.Category,
		CurrentStock:  m.CurrentStock,
		UnitOfMeasure: m.UnitOfMeasure,
		LowStock:      low,
	}
}
