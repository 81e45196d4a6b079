package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia del kardex (movimientos de
// inventario). Los movimientos son inmutables: solo insert y lectura.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByReference(reference string) ([]*entity.Movement, error)
	// AverageReceiptCost media aritmética del costo unitario de los ingresos
	// por compra del ítem (insumo del recálculo de costo promedio).
	AverageReceiptCost(itemID string) (decimal.Decimal, error)
}
