package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/recipe"
)

// RecipeHandler editor de recetas.
type RecipeHandler struct {
	uc *recipe.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// List GET /api/recipes. Las recetas corruptas vienen con "error" en lugar de fallar todo.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListRecipes(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.RecipeDTO]{Items: list, Total: len(list)})
}

// Get GET /api/recipes/:product
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetRecipe(c.Context(), c.Params("product"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o reemplazar receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product  path  string                 true  "nombre del producto"
// @Param        body     body  dto.SaveRecipeRequest  true  "componentes por unidad"
// @Success      200  {object}  dto.RecipeDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/recipes/{product} [put]
func (h *RecipeHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SaveRecipe(c.Context(), c.Params("product"), in.Components)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
