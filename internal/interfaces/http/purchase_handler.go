package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/application/reports"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// PurchaseHandler compras de materia prima.
type PurchaseHandler struct {
	intake  *inventory.IntakeUseCase
	reports *reports.ReportsUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(intake *inventory.IntakeUseCase, reports *reports.ReportsUseCase) *PurchaseHandler {
	return &PurchaseHandler{intake: intake, reports: reports}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Suma cada ítem válido al stock (crea la entrada si no existe) y agrega una fila
//
//	por ítem a purchase_orders. Los ítems inválidos se omiten y se informan.
//
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "proveedor e ítems"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	items := make([]inventory.PurchaseItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = inventory.PurchaseItem{
			MaterialName: it.MaterialName,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			Price:        it.Price,
		}
	}
	res, err := h.intake.Intake(c.Context(), inventory.IntakeInput{
		SupplierName:  in.SupplierName,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		PaymentSystem: in.PaymentSystem,
		Status:        in.Status,
		Items:         items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(res))
}

// List godoc
// @Summary      Reporte de compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	r, err := parseRange(c, h.reports)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.reports.ListPurchases(c.Context(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[repository.Row]{Items: rows, Total: len(rows)})
}

// Update edición en bloque de purchase_orders por purchase_id. PUT /api/purchases
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRowsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.reports.UpdatePurchases(c.Context(), toRows(in.Rows))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UpdateRowsResponse{Updated: n})
}

// Export exporta compras a Excel. GET /api/purchases/export
func (h *PurchaseHandler) Export(c *fiber.Ctx) error {
	r, err := parseRange(c, h.reports)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.reports.ExportPurchases(c.Context(), r)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, xlsxContentType, "purchase_orders.xlsx", data)
}
