package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
)

// ProductionHandler producción interna (consume stock sin orden de venta).
type ProductionHandler struct {
	consumption *inventory.ConsumptionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(consumption *inventory.ConsumptionUseCase) *ProductionHandler {
	return &ProductionHandler{consumption: consumption}
}

// Create godoc
// @Summary      Registrar producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRequest  true  "producto y cantidad"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.consumption.Produce(c.Context(), in.ProductName, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toConsumptionResponse(res))
}
