package inventory

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// StockTransactionResult es lo que devuelve cada operación del motor: las
// filas de stock actualizadas y los movimientos creados, en orden de
// aplicación. Una recepción idempotente devuelve un resultado vacío.
type StockTransactionResult struct {
	Stocks    []*entity.Stock
	Movements []*entity.Movement
}

func (r *StockTransactionResult) append(stock *entity.Stock, mov *entity.Movement) {
	r.Stocks = append(r.Stocks, stock)
	r.Movements = append(r.Movements, mov)
}

// Keys devuelve las claves (ítem, bodega) tocadas, para invalidar caché.
func (r *StockTransactionResult) Keys() []StockKey {
	seen := make(map[StockKey]struct{}, len(r.Stocks))
	keys := make([]StockKey, 0, len(r.Stocks))
	for _, s := range r.Stocks {
		k := StockKey{ItemID: s.ItemID, WarehouseID: s.WarehouseID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
