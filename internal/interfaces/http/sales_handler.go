package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/application/reports"
	"github.com/jhoicas/evodia-api/internal/application/sales"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SalesHandler ventas: registro, reporte, exportación y comprobante.
type SalesHandler struct {
	consumption *inventory.ConsumptionUseCase
	reports     *reports.ReportsUseCase
	receipts    *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(consumption *inventory.ConsumptionUseCase, reports *reports.ReportsUseCase, receipts *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{consumption: consumption, reports: reports, receipts: receipts}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta la materia prima según la receta y agrega la orden a sales_orders.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "producto, cantidad y datos del cliente"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.consumption.Sell(c.Context(), in.ProductName, in.Quantity, inventory.SaleDetails{
		ClientName:    in.ClientName,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		TotalPurchase: in.TotalPurchase,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toConsumptionResponse(res))
}

// List godoc
// @Summary      Reporte de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	r, err := parseRange(c, h.reports)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.reports.ListSales(c.Context(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[repository.Row]{Items: rows, Total: len(rows)})
}

// Update godoc
// @Summary      Editar ventas en bloque
// @Description  Modifica filas de sales_orders por receipt_id; receipt_id y date no se editan.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRowsRequest  true  "filas editadas"
// @Success      200   {object}  dto.UpdateRowsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/sales [put]
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRowsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.reports.UpdateSales(c.Context(), toRows(in.Rows))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UpdateRowsResponse{Updated: n})
}

// Export godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200
// @Router       /api/sales/export [get]
func (h *SalesHandler) Export(c *fiber.Ctx) error {
	r, err := parseRange(c, h.reports)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.reports.ExportSales(c.Context(), r)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, xlsxContentType, "sales_orders.xlsx", data)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "receipt_id"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	data, name, err := h.receipts.GenerateReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", name, data)
}

func toRows(in []map[string]string) []repository.Row {
	rows := make([]repository.Row, len(in))
	for i, r := range in {
		rows[i] = repository.Row(r)
	}
	return rows
}

func parseRange(c *fiber.Ctx, uc *reports.ReportsUseCase) (reports.DateRange, error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return reports.DateRange{}, err
	}
	return reports.ParseDateRange(q.From, q.To, uc.Location())
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
