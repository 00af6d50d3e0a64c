package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	stockledger "github.com/jhoicas/evodia-api/internal/domain/inventory"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
	"github.com/jhoicas/evodia-api/internal/domain/sequence"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

// PurchaseItem línea de compra.
type PurchaseItem struct {
	MaterialName string
	Quantity     decimal.Decimal
	Unit         string
	Price        decimal.Decimal
}

// IntakeInput compra de varios ítems a un mismo proveedor.
type IntakeInput struct {
	SupplierName  string
	Category      string
	SubCategory   string // también es la categoría de las entradas de stock nuevas
	PaymentSystem string
	Status        string
	Items         []PurchaseItem
}

// SkippedItem ítem descartado y el motivo.
type SkippedItem struct {
	Index        int
	MaterialName string
	Reason       string
}

// IntakeResult resultado de un ingreso con al menos un ítem aceptado.
type IntakeResult struct {
	OperationID string
	Orders      []entity.PurchaseOrder
	Skipped     []SkippedItem
	Created     []entity.MaterialStock // entradas de stock creadas por la compra
}

// IntakeUseCase registra compras: suma o crea entradas de stock y agrega las órdenes.
// Es mejor esfuerzo por ítem: los inválidos se omiten sin abortar el lote.
type IntakeUseCase struct {
	inventory repository.InventoryRepository
	purchases repository.PurchaseOrderRepository
	opts      Options
	log       *logger.Logger
}

// NewIntakeUseCase construye el motor de ingreso.
func NewIntakeUseCase(
	inventory repository.InventoryRepository,
	purchases repository.PurchaseOrderRepository,
	log *logger.Logger,
	opts Options,
) *IntakeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &IntakeUseCase{
		inventory: inventory,
		purchases: purchases,
		opts:      opts.withDefaults(),
		log:       log.WithComponent("intake"),
	}
}

// Intake procesa los ítems en orden. Si ninguno es válido devuelve *domain.NoValidItemsError
// sin escribir nada. Si no, sobrescribe inventory_stock y luego agrega todas las órdenes;
// si ese segundo paso falla devuelve *domain.PartialCommitError.
func (uc *IntakeUseCase) Intake(ctx context.Context, in IntakeInput) (res *IntakeResult, err error) {
	opID := uuid.New().String()
	log := uc.log.WithOp(opID)
	start := uc.opts.Clock()
	defer func() {
		uc.opts.Metrics.ObserveOperation(KindPurchase, Outcome(err), uc.opts.Clock().Sub(start))
	}()

	if err := uc.normalize(&in); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, &domain.NoValidItemsError{Reasons: []string{"la compra no tiene ítems"}}
	}

	uc.opts.Lock.Lock()
	defer uc.opts.Lock.Unlock()

	snapshot, err := uc.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer inventario: %w", err)
	}
	existingIDs, err := uc.purchases.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer ids de compras: %w", err)
	}

	materialIDs := sequence.NewAllocator(uc.opts.IDs.MaterialPrefix, uc.opts.IDs.Width, stockledger.MaterialIDs(snapshot))
	purchaseIDs := sequence.NewAllocator(uc.opts.IDs.PurchasePrefix, uc.opts.IDs.Width, existingIDs)
	ledger := stockledger.NewLedger(snapshot, materialIDs)

	category := in.SubCategory
	if category == "" {
		category = uc.opts.DefaultCategory
	}
	now := uc.opts.Clock()

	res = &IntakeResult{OperationID: opID}
	for i, item := range in.Items {
		name := strings.TrimSpace(item.MaterialName)
		unit := strings.TrimSpace(item.Unit)
		if reason := skipReason(name, unit, item); reason != "" {
			log.Warn().Int("item", i).Str("material", name).Str("reason", reason).Msg("ítem de compra omitido")
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, MaterialName: name, Reason: reason})
			continue
		}

		entry, created, err := ledger.Upsert(name, in.SupplierName, item.Quantity, category, unit)
		if err != nil {
			log.Warn().Err(err).Int("item", i).Str("material", name).Msg("ítem de compra omitido")
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, MaterialName: name, Reason: err.Error()})
			continue
		}
		if created {
			res.Created = append(res.Created, entry)
		}
		res.Orders = append(res.Orders, entity.PurchaseOrder{
			PurchaseID:    purchaseIDs.Next(),
			Date:          now,
			Category:      in.Category,
			SubCategory:   in.SubCategory,
			SupplierName:  in.SupplierName,
			MaterialName:  name,
			Quantity:      item.Quantity,
			UnitOfMeasure: unit,
			Price:         item.Price,
			PaymentSystem: in.PaymentSystem,
			Status:        in.Status,
		})
	}

	if len(res.Orders) == 0 {
		reasons := make([]string, len(res.Skipped))
		for i, s := range res.Skipped {
			reasons[i] = fmt.Sprintf("ítem %d: %s", s.Index+1, s.Reason)
		}
		return nil, &domain.NoValidItemsError{Reasons: reasons}
	}

	if err := uc.inventory.ReplaceAll(ctx, ledger.Entries()); err != nil {
		log.Error().Err(err).Msg("no se pudo escribir inventario")
		return nil, &domain.StoreWriteError{Table: repository.TableInventoryStock, Err: err}
	}
	if err := uc.purchases.AppendBatch(ctx, res.Orders); err != nil {
		log.Error().Err(err).
			Int("orders", len(res.Orders)).
			Str("committed", repository.TableInventoryStock).
			Str("pending", repository.TablePurchaseOrders).
			Msg("COMMIT PARCIAL: stock incrementado sin órdenes de compra, conciliar manualmente")
		return nil, &domain.PartialCommitError{
			OperationID: opID,
			Committed:   repository.TableInventoryStock,
			Pending:     repository.TablePurchaseOrders,
			Err:         err,
		}
	}

	log.Info().Str("supplier", in.SupplierName).Int("accepted", len(res.Orders)).Int("skipped", len(res.Skipped)).Int("created", len(res.Created)).Msg("compra registrada")
	return res, nil
}

func (uc *IntakeUseCase) normalize(in *IntakeInput) error {
	in.SupplierName = strings.TrimSpace(in.SupplierName)
	in.SubCategory = strings.TrimSpace(in.SubCategory)
	if in.SupplierName == "" {
		return fmt.Errorf("%w: supplier_name requerido", domain.ErrInvalidInput)
	}
	if in.Category == "" {
		in.Category = entity.PurchaseCategoryOperational
	}
	if in.Status == "" {
		in.Status = entity.PurchaseStatusPaid
	}
	if in.Status != entity.PurchaseStatusPaid && in.Status != entity.PurchaseStatusPending {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	return nil
}

func skipReason(name, unit string, item PurchaseItem) string {
	switch {
	case name == "":
		return "material_name vacío"
	case !item.Quantity.IsPositive():
		return "quantity debe ser positiva"
	case unit == "":
		return "unit vacía"
	case item.Price.IsNegative():
		return "price negativo"
	}
	return ""
}
