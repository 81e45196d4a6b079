package repository

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// StockRepository puerto para consultar y actualizar existencias por
// (ítem, bodega). Las mutaciones ocurren siempre dentro de una transacción.
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe retorna una fila en cero
	// (no es error: la fila se materializa con el primer movimiento).
	Get(itemID, warehouseID string) (*entity.Stock, error)
	// EnsureRow crea la fila en cero si no existe todavía. Debe llamarse
	// antes de GetForUpdate: el bloqueo de fila solo serializa si la fila
	// existe.
	EnsureRow(itemID, warehouseID string) error
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE)
	// para serializar el chequeo-y-mutación por clave.
	GetForUpdate(itemID, warehouseID string) (*entity.Stock, error)
	// Upsert inserta o actualiza la cantidad de la fila.
	Upsert(stock *entity.Stock) error
	// ListByWarehouse lista las existencias de una bodega.
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
	// ListBelowMinimum lista filas con cantidad por debajo del mínimo del ítem.
	ListBelowMinimum(warehouseID string) ([]*entity.Stock, error)
}
