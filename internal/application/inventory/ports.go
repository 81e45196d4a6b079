package inventory

import (
	"context"

	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements   repository.MovementRepository
	Stock       repository.StockRepository
	Items       repository.ItemRepository
	Purchases   repository.PurchaseRepository
	Orders      repository.OrderRepository
	Productions repository.ProductionRepository
	Recipes     repository.RecipeRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa transacción. Si fn retorna error se hace Rollback; si no,
// Commit. Garantiza el todo-o-nada del motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// StockKey identifica una fila del libro de existencias.
type StockKey struct {
	ItemID      string
	WarehouseID string
}

// StockCache puerto de invalidación del caché de existencias. Se invoca
// después del Commit por cada clave tocada; una implementación nil se ignora.
type StockCache interface {
	Invalidate(ctx context.Context, keys ...StockKey)
}
