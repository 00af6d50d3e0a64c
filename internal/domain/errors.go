package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los tipos estructurados de abajo se comparan contra estos
// sentinelas con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrTableNotFound     = errors.New("tabla no encontrada en el almacén")
	ErrRecipeNotFound    = errors.New("receta no encontrada")
	ErrRecipeMalformed   = errors.New("receta malformada")
	ErrMaterialNotFound  = errors.New("material no encontrado en inventario")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoValidItems      = errors.New("ningún ítem válido en la compra")
	ErrStoreWrite        = errors.New("fallo de escritura en el almacén de registros")
	ErrPartialCommit     = errors.New("commit parcial: requiere conciliación manual")
	ErrCorruptRecord     = errors.New("valor ilegible en el almacén de registros")
)

// MaterialNotFoundError indica que un componente de la receta no tiene fila en inventory_stock.
type MaterialNotFoundError struct {
	Material string
	Supplier string
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("material %q del proveedor %q no encontrado en inventario", e.Material, e.Supplier)
}

func (e *MaterialNotFoundError) Is(target error) bool { return target == ErrMaterialNotFound }

// InsufficientStockError lleva lo necesario para que el operador corrija la entrada.
// Needed es el total acumulado pedido para la entrada; Available el stock del snapshot.
type InsufficientStockError struct {
	Material  string
	Supplier  string
	Needed    decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %q (proveedor %q): requerido %s, disponible %s",
		e.Material, e.Supplier, e.Needed.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Shortfall cantidad faltante.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Needed.Sub(e.Available)
}

// StoreWriteError envuelve el error de I/O del almacén de registros.
type StoreWriteError struct {
	Table string
	Err   error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("escribir tabla %s: %v", e.Table, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

func (e *StoreWriteError) Is(target error) bool { return target == ErrStoreWrite }

// PartialCommitError: el primer paso de la saga quedó persistido y el segundo falló.
// Committed/Pending describen las tablas de cada paso.
type PartialCommitError struct {
	OperationID string
	Committed   string
	Pending     string
	Err         error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("operación %s: %s ya persistido pero %s falló: %v",
		e.OperationID, e.Committed, e.Pending, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

func (e *PartialCommitError) Is(target error) bool { return target == ErrPartialCommit }

// NoValidItemsError lista por qué se descartó cada ítem de la compra.
type NoValidItemsError struct {
	Reasons []string
}

func (e *NoValidItemsError) Error() string {
	if len(e.Reasons) == 0 {
		return ErrNoValidItems.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNoValidItems.Error(), strings.Join(e.Reasons, "; "))
}

func (e *NoValidItemsError) Is(target error) bool { return target == ErrNoValidItems }
