package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/domain"
)

// InventoryHandler listado de stock (protegido).
type InventoryHandler struct {
	uc *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Stock de materiales
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "busca en material o proveedor"
// @Param        threshold  query  number  false  "umbral de stock bajo (por defecto el de configuración)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var threshold *decimal.Decimal
	if raw := strings.TrimSpace(c.Query("threshold")); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return writeError(c, fmt.Errorf("%w: threshold %q", domain.ErrInvalidInput, raw))
		}
		threshold = &d
	}
	views, err := h.uc.ListStock(c.Context(), c.Query("q"), threshold)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockDTO, len(views))
	low := 0
	for i, v := range views {
		items[i] = toStockDTO(v.MaterialStock, v.LowStock)
		if v.LowStock {
			low++
		}
	}
	return c.JSON(fiber.Map{
		"total":     len(items),
		"low_stock": low,
		"items":     items,
	})
}
