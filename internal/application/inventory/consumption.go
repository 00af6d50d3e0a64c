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

// Tipos de operación para logs y métricas.
const (
	KindSale       = "sale"
	KindProduction = "production"
	KindPurchase   = "purchase"
)

// SaleDetails datos de la orden de venta. Si se pasa en ConsumeInput se agrega la fila
// a sales_orders después de descontar el stock.
type SaleDetails struct {
	ClientName    string
	PaymentMethod string
	Status        string
	TotalPurchase decimal.Decimal
}

// ConsumeInput entrada del motor de consumo.
type ConsumeInput struct {
	ProductName string
	Quantity    int
	Sale        *SaleDetails // nil = producción interna
}

// ConsumeResult resultado de un consumo exitoso.
type ConsumeResult struct {
	OperationID string
	ProductName string
	Quantity    int
	Deltas      []stockledger.Delta
	Sale        *entity.SalesOrder
}

// ConsumptionUseCase descuenta materia prima según la receta, para ventas y producción.
// Todo o nada sobre el stock: o se escriben todos los deltas o ninguno.
type ConsumptionUseCase struct {
	resolver  *BOMResolver
	inventory repository.InventoryRepository
	sales     repository.SalesOrderRepository
	opts      Options
	log       *logger.Logger
}

// NewConsumptionUseCase construye el motor de consumo.
func NewConsumptionUseCase(
	resolver *BOMResolver,
	inventory repository.InventoryRepository,
	sales repository.SalesOrderRepository,
	log *logger.Logger,
	opts Options,
) *ConsumptionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsumptionUseCase{
		resolver:  resolver,
		inventory: inventory,
		sales:     sales,
		opts:      opts.withDefaults(),
		log:       log.WithComponent("consumption"),
	}
}

// Sell descuenta stock y registra la venta.
func (uc *ConsumptionUseCase) Sell(ctx context.Context, productName string, quantity int, sale SaleDetails) (*ConsumeResult, error) {
	return uc.Consume(ctx, ConsumeInput{ProductName: productName, Quantity: quantity, Sale: &sale})
}

// Produce descuenta stock para una corrida de producción interna, sin orden de venta.
func (uc *ConsumptionUseCase) Produce(ctx context.Context, productName string, quantity int) (*ConsumeResult, error) {
	return uc.Consume(ctx, ConsumeInput{ProductName: productName, Quantity: quantity})
}

// Consume ejecuta: resolver receta, escalar, verificar contra el snapshot, aplicar,
// sobrescribir inventory_stock y, si es venta, agregar la orden.
// Un error antes de escribir el inventario garantiza que nada cambió. Si la orden no se
// pudo agregar después de escribir el stock devuelve *domain.PartialCommitError.
func (uc *ConsumptionUseCase) Consume(ctx context.Context, in ConsumeInput) (res *ConsumeResult, err error) {
	kind := KindProduction
	if in.Sale != nil {
		kind = KindSale
	}
	opID := uuid.New().String()
	log := uc.log.WithOp(opID)
	start := uc.opts.Clock()
	defer func() {
		uc.opts.Metrics.ObserveOperation(kind, Outcome(err), uc.opts.Clock().Sub(start))
	}()

	sale, err := normalizeConsumeInput(&in)
	if err != nil {
		return nil, err
	}

	uc.opts.Lock.Lock()
	defer uc.opts.Lock.Unlock()

	recipe, err := uc.resolver.Resolve(ctx, in.ProductName)
	if err != nil {
		log.Warn().Err(err).Str("product", in.ProductName).Msg("receta no disponible")
		return nil, err
	}
	reqs := Requirements(recipe, in.Quantity)

	snapshot, err := uc.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer inventario: %w", err)
	}
	ledger := stockledger.NewLedger(snapshot, nil)
	deltas, err := ledger.CheckAndReserve(reqs)
	if err != nil {
		log.Warn().Err(err).Str("product", in.ProductName).Int("quantity", in.Quantity).Msg("consumo rechazado")
		return nil, err
	}

	// El ID se reserva antes de cualquier escritura: si la lectura falla no se toca nada.
	var saleIDs *sequence.Allocator
	if sale != nil {
		ids, err := uc.sales.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("leer ids de ventas: %w", err)
		}
		saleIDs = sequence.NewAllocator(uc.opts.IDs.SalesPrefix, uc.opts.IDs.Width, ids)
	}

	if err := ledger.Apply(deltas); err != nil {
		return nil, err
	}
	if err := uc.inventory.ReplaceAll(ctx, ledger.Entries()); err != nil {
		log.Error().Err(err).Msg("no se pudo escribir inventario")
		return nil, &domain.StoreWriteError{Table: repository.TableInventoryStock, Err: err}
	}

	res = &ConsumeResult{
		OperationID: opID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		Deltas:      deltas,
	}
	if sale == nil {
		log.Info().Str("product", in.ProductName).Int("quantity", in.Quantity).Int("materials", len(deltas)).Msg("producción registrada")
		return res, nil
	}

	order := entity.SalesOrder{
		ReceiptID:       saleIDs.Next(),
		Date:            uc.opts.Clock(),
		ClientName:      sale.ClientName,
		ProductName:     in.ProductName,
		ProductQuantity: in.Quantity,
		TotalPurchase:   sale.TotalPurchase,
		PaymentMethod:   sale.PaymentMethod,
		Status:          sale.Status,
	}
	if err := uc.sales.Append(ctx, order); err != nil {
		log.Error().Err(err).
			Str("receipt_id", order.ReceiptID).
			Str("committed", repository.TableInventoryStock).
			Str("pending", repository.TableSalesOrders).
			Msg("COMMIT PARCIAL: stock descontado sin orden de venta, conciliar manualmente")
		return nil, &domain.PartialCommitError{
			OperationID: opID,
			Committed:   repository.TableInventoryStock,
			Pending:     repository.TableSalesOrders,
			Err:         err,
		}
	}
	res.Sale = &order
	log.Info().Str("receipt_id", order.ReceiptID).Str("product", in.ProductName).Int("quantity", in.Quantity).Msg("venta registrada")
	return res, nil
}

func normalizeConsumeInput(in *ConsumeInput) (*SaleDetails, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if in.ProductName == "" {
		return nil, fmt.Errorf("%w: product_name requerido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser un entero positivo", domain.ErrInvalidInput)
	}
	if in.Sale == nil {
		return nil, nil
	}
	sale := *in.Sale
	sale.ClientName = strings.TrimSpace(sale.ClientName)
	if sale.ClientName == "" {
		return nil, fmt.Errorf("%w: client_name requerido", domain.ErrInvalidInput)
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(sale.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, sale.PaymentMethod)
	}
	if sale.Status == "" {
		sale.Status = entity.SaleStatusRequest
	}
	if !entity.ValidSaleStatus(sale.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, sale.Status)
	}
	if sale.TotalPurchase.IsNegative() {
		return nil, fmt.Errorf("%w: total_purchase no puede ser negativo", domain.ErrInvalidInput)
	}
	return &sale, nil
}
