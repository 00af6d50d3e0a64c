// Package recipe contiene el editor de recetas (products_bom).
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/bom"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// RecipeUseCase lista, consulta y guarda recetas.
type RecipeUseCase struct {
	recipes  repository.RecipeRepository
	resolver *inventory.BOMResolver
	lock     *inventory.WriteLock
	log      *logger.Logger
}

// NewRecipeUseCase construye el caso de uso. lock debe ser el mismo de los motores; nil
// crea uno propio.
func NewRecipeUseCase(recipes repository.RecipeRepository, lock *inventory.WriteLock, log *logger.Logger) *RecipeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if lock == nil {
		lock = inventory.NewWriteLock()
	}
	return &RecipeUseCase{
		recipes:  recipes,
		resolver: inventory.NewBOMResolver(recipes),
		lock:     lock,
		log:      log.WithComponent("recipe"),
	}
}

// ListRecipes devuelve todas las recetas ordenadas por producto. Una receta corrupta no
// rompe el listado: se devuelve con Error y sin componentes.
func (uc *RecipeUseCase) ListRecipes(ctx context.Context) ([]dto.RecipeDTO, error) {
	rows, err := uc.recipes.ListEncoded(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeDTO, 0, len(rows))
	for _, r := range rows {
		item := dto.RecipeDTO{ProductName: r.ProductName, Components: []dto.ComponentDTO{}}
		components, err := bom.Decode(r.Components)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Components = ToComponentDTOs(components)
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

// GetRecipe mismas reglas que el resolver del motor de consumo.
func (uc *RecipeUseCase) GetRecipe(ctx context.Context, productName string) (*dto.RecipeDTO, error) {
	r, err := uc.resolver.Resolve(ctx, strings.TrimSpace(productName))
	if err != nil {
		return nil, err
	}
	return &dto.RecipeDTO{ProductName: r.ProductName, Components: ToComponentDTOs(r.Components)}, nil
}

// SaveRecipe crea o reemplaza la receta del producto.
func (uc *RecipeUseCase) SaveRecipe(ctx context.Context, productName string, components []dto.ComponentDTO) (*dto.RecipeDTO, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, fmt.Errorf("%w: product_name requerido", domain.ErrInvalidInput)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: la receta necesita al menos un componente", domain.ErrInvalidInput)
	}
	parsed := make([]entity.Component, len(components))
	for i, c := range components {
		name := strings.TrimSpace(c.MaterialName)
		if name == "" {
			return nil, fmt.Errorf("%w: componente %d sin material_name", domain.ErrInvalidInput, i+1)
		}
		supplier := strings.TrimSpace(c.SupplierName)
		if supplier == "" {
			return nil, fmt.Errorf("%w: componente %d sin supplier_name", domain.ErrInvalidInput, i+1)
		}
		if !c.QuantityNeeded.IsPositive() {
			return nil, fmt.Errorf("%w: componente %d: quantity_needed debe ser positivo", domain.ErrInvalidInput, i+1)
		}
		parsed[i] = entity.Component{MaterialName: name, SupplierName: supplier, QuantityNeeded: c.QuantityNeeded}
	}

	encoded, err := bom.Encode(parsed)
	if err != nil {
		return nil, err
	}
	uc.lock.Lock()
	err = uc.recipes.SaveEncoded(ctx, productName, encoded)
	uc.lock.Unlock()
	if err != nil {
		return nil, &domain.StoreWriteError{Table: repository.TableProductsBOM, Err: err}
	}
	uc.log.Info().Str("product", productName).Int("components", len(parsed)).Msg("receta guardada")
	return &dto.RecipeDTO{ProductName: productName, Components: ToComponentDTOs(parsed)}, nil
}

// ToComponentDTOs convierte componentes de dominio.
func ToComponentDTOs(cs []entity.Component) []dto.ComponentDTO {
	out := make([]dto.ComponentDTO, len(cs))
	for i, c := range cs {
		out[i] = dto.ComponentDTO{
			MaterialName:   c.MaterialName,
			SupplierName:   c.SupplierName,
			QuantityNeeded: c.QuantityNeeded,
		}
	}
	return out
}
