package recipe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/application/recipe"
	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

type memRecipes struct {
	rows    []repository.EncodedRecipe
	saveErr error
}

func (m *memRecipes) GetEncoded(_ context.Context, product string) (string, error) {
	for _, r := range m.rows {
		if r.ProductName == product {
			return r.Components, nil
		}
	}
	return "", domain.ErrNotFound
}

func (m *memRecipes) ListEncoded(context.Context) ([]repository.EncodedRecipe, error) {
	return m.rows, nil
}

func (m *memRecipes) SaveEncoded(_ context.Context, product, components string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.rows {
		if m.rows[i].ProductName == product {
			m.rows[i].Components = components
			return nil
		}
	}
	m.rows = append(m.rows, repository.EncodedRecipe{ProductName: product, Components: components})
	return nil
}

func TestListRecipes_RecetaCorruptaNoRompeListado(t *testing.T) {
	repo := &memRecipes{rows: []repository.EncodedRecipe{
		{ProductName: "Zeta", Components: `[{"material_name":"A","supplier_name":"S","quantity_needed":1}]`},
		{ProductName: "Alfa", Components: `not json`},
	}}
	uc := recipe.NewRecipeUseCase(repo, nil, logger.Nop())

	list, err := uc.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].ProductName)
	assert.NotEmpty(t, list[0].Error)
	assert.Empty(t, list[0].Components)
	assert.Equal(t, "Zeta", list[1].ProductName)
	assert.Len(t, list[1].Components, 1)
}

func TestSaveRecipe_CreaYReemplaza(t *testing.T) {
	repo := &memRecipes{}
	uc := recipe.NewRecipeUseCase(repo, nil, logger.Nop())
	ctx := context.Background()

	_, err := uc.SaveRecipe(ctx, "Perfume-A", []dto.ComponentDTO{
		{MaterialName: "Methanol", SupplierName: "SupplierX", QuantityNeeded: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	_, err = uc.SaveRecipe(ctx, " Perfume-A ", []dto.ComponentDTO{
		{MaterialName: "Methanol", SupplierName: "SupplierX", QuantityNeeded: decimal.RequireFromString("12.5")},
		{MaterialName: "Bottle", SupplierName: "GlassCo", QuantityNeeded: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	require.Len(t, repo.rows, 1, "reemplaza la fila existente")

	got, err := uc.GetRecipe(ctx, "Perfume-A")
	require.NoError(t, err)
	require.Len(t, got.Components, 2)
	assert.True(t, got.Components[0].QuantityNeeded.Equal(decimal.RequireFromString("12.5")))
}

func TestSaveRecipe_Validaciones(t *testing.T) {
	uc := recipe.NewRecipeUseCase(&memRecipes{}, nil, logger.Nop())
	ctx := context.Background()
	ok := dto.ComponentDTO{MaterialName: "A", SupplierName: "S", QuantityNeeded: decimal.NewFromInt(1)}

	casos := map[string]struct {
		product    string
		components []dto.ComponentDTO
	}{
		"sin producto":      {"", []dto.ComponentDTO{ok}},
		"sin componentes":   {"P", nil},
		"sin material":      {"P", []dto.ComponentDTO{{SupplierName: "S", QuantityNeeded: decimal.NewFromInt(1)}}},
		"sin proveedor":     {"P", []dto.ComponentDTO{{MaterialName: "A", QuantityNeeded: decimal.NewFromInt(1)}}},
		"cantidad cero":     {"P", []dto.ComponentDTO{{MaterialName: "A", SupplierName: "S"}}},
		"cantidad negativa": {"P", []dto.ComponentDTO{{MaterialName: "A", SupplierName: "S", QuantityNeeded: decimal.NewFromInt(-1)}}},
	}
	for nombre, c := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := uc.SaveRecipe(ctx, c.product, c.components)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSaveRecipe_FalloDeEscritura(t *testing.T) {
	uc := recipe.NewRecipeUseCase(&memRecipes{saveErr: errors.New("boom")}, nil, logger.Nop())
	_, err := uc.SaveRecipe(context.Background(), "P", []dto.ComponentDTO{
		{MaterialName: "A", SupplierName: "S", QuantityNeeded: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrStoreWrite)
}

func TestGetRecipe_NoEncontrada(t *testing.T) {
	uc := recipe.NewRecipeUseCase(&memRecipes{}, nil, logger.Nop())
	_, err := uc.GetRecipe(context.Background(), "Ghost")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestSaveRecipe_EsperaElLockCompartido(t *testing.T) {
	repo := &memRecipes{}
	lock := inventory.NewWriteLock()
	uc := recipe.NewRecipeUseCase(repo, lock, logger.Nop())

	lock.Lock()
	done := make(chan error, 1)
	go func() {
		_, err := uc.SaveRecipe(context.Background(), "Vela", []dto.ComponentDTO{
			{MaterialName: "Cera", SupplierName: "Toko Lilin", QuantityNeeded: decimal.NewFromInt(200)},
		})
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("SaveRecipe escribió con el lock tomado")
	case <-time.After(50 * time.Millisecond):
	}
	lock.Unlock()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("SaveRecipe no terminó tras liberar el lock")
	}
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Vela", repo.rows[0].ProductName)
}
