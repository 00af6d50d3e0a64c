// Package sales arma el comprobante de una venta registrada.
package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// Receipt datos que necesita el generador de PDF.
type Receipt struct {
	Business   string
	Order      entity.SalesOrder
	Components []entity.Component // receta vigente; vacía si no se pudo resolver
}

// ReceiptPDFGenerator puerto hacia el generador de PDF.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, receipt Receipt) ([]byte, error)
}

// RecipeResolver resuelve la receta de un producto (inventory.BOMResolver).
type RecipeResolver interface {
	Resolve(ctx context.Context, productName string) (*entity.Recipe, error)
}

// ReceiptUseCase genera comprobantes de ventas existentes.
type ReceiptUseCase struct {
	sales    repository.SalesOrderRepository
	resolver RecipeResolver
	pdf      ReceiptPDFGenerator
	business string
	log      *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. resolver puede ser nil.
func NewReceiptUseCase(
	sales repository.SalesOrderRepository,
	resolver RecipeResolver,
	pdf ReceiptPDFGenerator,
	business string,
	log *logger.Logger,
) *ReceiptUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{
		sales:    sales,
		resolver: resolver,
		pdf:      pdf,
		business: business,
		log:      log.WithComponent("receipt"),
	}
}

// GenerateReceipt devuelve el PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, receiptID string) ([]byte, string, error) {
	if receiptID == "" {
		return nil, "", fmt.Errorf("%w: receipt_id requerido", domain.ErrInvalidInput)
	}
	order, err := uc.sales.GetByID(ctx, receiptID)
	if err != nil {
		return nil, "", err
	}

	receipt := Receipt{Business: uc.business, Order: *order}
	if uc.resolver != nil {
		recipe, err := uc.resolver.Resolve(ctx, order.ProductName)
		switch {
		case err == nil:
			receipt.Components = recipe.Components
		case errors.Is(err, domain.ErrRecipeNotFound), errors.Is(err, domain.ErrRecipeMalformed):
			// el comprobante sale sin composición
			uc.log.Warn().Err(err).Str("product", order.ProductName).Msg("comprobante sin receta")
		default:
			return nil, "", err
		}
	}

	pdf, err := uc.pdf.GenerateSaleReceipt(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, "comprobante-" + order.ReceiptID + ".pdf", nil
}
