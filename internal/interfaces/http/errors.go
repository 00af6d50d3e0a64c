package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/domain"
)

// writeError traduce errores de dominio a código HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		insufficient *domain.InsufficientStockError
		missing      *domain.MaterialNotFoundError
		noItems      *domain.NoValidItemsError
		partial      *domain.PartialCommitError
		storeWrite   *domain.StoreWriteError
	)
	switch {
	case errors.As(err, &partial):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "PARTIAL_COMMIT",
			Message: "la operación quedó a medias; concilie manualmente",
			Details: fiber.Map{
				"operation_id": partial.OperationID,
				"committed":    partial.Committed,
				"pending":      partial.Pending,
			},
		}
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: err.Error(),
			Details: fiber.Map{
				"material_name": insufficient.Material,
				"supplier_name": insufficient.Supplier,
				"needed":        insufficient.Needed,
				"available":     insufficient.Available,
				"shortfall":     insufficient.Shortfall(),
			},
		}
	case errors.As(err, &missing):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "MATERIAL_NOT_FOUND",
			Message: err.Error(),
			Details: fiber.Map{"material_name": missing.Material, "supplier_name": missing.Supplier},
		}
	case errors.As(err, &noItems):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "NO_VALID_ITEMS",
			Message: domain.ErrNoValidItems.Error(),
			Details: fiber.Map{"reasons": noItems.Reasons},
		}
	case errors.As(err, &storeWrite):
		return fiber.StatusBadGateway, dto.ErrorResponse{
			Code:    "STORE_WRITE_FAILURE",
			Message: "no se pudo escribir en el almacén de registros",
			Details: fiber.Map{"table": storeWrite.Table},
		}
	case errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "RECIPE_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrRecipeMalformed):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "RECIPE_MALFORMED", Message: err.Error()}
	case errors.Is(err, domain.ErrCorruptRecord):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "CORRUPT_RECORD", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrTableNotFound):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "TABLE_NOT_FOUND", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
