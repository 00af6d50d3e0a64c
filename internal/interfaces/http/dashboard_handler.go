package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/evodia-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los conteos de la portada.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (sales_orders, purchase_orders, inventory_items,
// low_stock_items, recipes).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
