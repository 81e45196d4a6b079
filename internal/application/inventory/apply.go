package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// applyIngreso bloquea la fila de stock, suma la cantidad y registra el
// movimiento de entrada. El costo unitario lo decide el caller (costo de la
// línea de compra, precio de referencia del producto terminado o costo del
// ajuste manual).
func applyIngreso(r TxRepos, itemID, warehouseID string, quantity, unitCost decimal.Decimal,
	reason, reference, actorID string, now time.Time) (*entity.Stock, *entity.Movement, error) {

	if err := r.Stock.EnsureRow(itemID, warehouseID); err != nil {
		return nil, nil, err
	}
	stock, err := r.Stock.GetForUpdate(itemID, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	stock.Quantity = stock.Quantity.Add(quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return nil, nil, err
	}
	mov := &entity.Movement{
		Type:        entity.MovementIngreso,
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		UnitCost:    unitCost,
		Reason:      reason,
		Reference:   reference,
		ActorID:     actorID,
		CreatedAt:   now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, nil, err
	}
	return stock, mov, nil
}

// applyEgreso bloquea la fila de stock, verifica suficiencia sobre la fila
// bloqueada, resta la cantidad y registra el movimiento de salida al costo
// promedio vigente del ítem. La verificación y la resta ocurren sobre la
// misma fila bloqueada: dos egresos concurrentes no pueden pasar ambos el
// chequeo con una lectura obsoleta.
func applyEgreso(r TxRepos, itemID, warehouseID string, quantity decimal.Decimal,
	reason, reference, actorID string, now time.Time) (*entity.Stock, *entity.Movement, error) {

	item, err := r.Items.GetByID(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, &domain.ReferentialIntegrityError{Entity: "ítem", ID: itemID}
	}
	if err := r.Stock.EnsureRow(itemID, warehouseID); err != nil {
		return nil, nil, err
	}
	stock, err := r.Stock.GetForUpdate(itemID, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	if stock.Quantity.LessThan(quantity) {
		return nil, nil, &domain.InsufficientStockError{
			ItemID:      itemID,
			WarehouseID: warehouseID,
			Requested:   quantity,
			Available:   stock.Quantity,
		}
	}
	stock.Quantity = stock.Quantity.Sub(quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return nil, nil, err
	}
	mov := &entity.Movement{
		Type:        entity.MovementEgreso,
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		UnitCost:    item.AverageCost,
		Reason:      reason,
		Reference:   reference,
		ActorID:     actorID,
		CreatedAt:   now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, nil, err
	}
	return stock, mov, nil
}
