package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/bom"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	stockledger "github.com/jhoicas/evodia-api/internal/domain/inventory"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// BOMResolver busca la receta de un producto y la decodifica. Solo lectura.
type BOMResolver struct {
	recipes repository.RecipeRepository
}

// NewBOMResolver construye el resolver.
func NewBOMResolver(recipes repository.RecipeRepository) *BOMResolver {
	return &BOMResolver{recipes: recipes}
}

// Resolve devuelve la receta. domain.ErrRecipeNotFound si el producto no tiene fila;
// domain.ErrRecipeMalformed si la fila existe pero no se puede decodificar.
func (r *BOMResolver) Resolve(ctx context.Context, productName string) (*entity.Recipe, error) {
	encoded, err := r.recipes.GetEncoded(ctx, productName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", domain.ErrRecipeNotFound, productName)
		}
		return nil, fmt.Errorf("leer receta %q: %w", productName, err)
	}
	components, err := bom.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("receta %q: %w", productName, err)
	}
	return &entity.Recipe{ProductName: productName, Components: components}, nil
}

// Requirements escala cada componente por quantity: requerido = quantity_needed × quantity.
func Requirements(recipe *entity.Recipe, quantity int) []stockledger.Requirement {
	q := decimal.NewFromInt(int64(quantity))
	reqs := make([]stockledger.Requirement, len(recipe.Components))
	for i, c := range recipe.Components {
		reqs[i] = stockledger.Requirement{
			Material: c.MaterialName,
			Supplier: c.SupplierName,
			Quantity: c.QuantityNeeded.Mul(q),
		}
	}
	return reqs
}
