package inventory

import (
	"context"
	"time"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// ReceivePurchaseUseCase marca una compra como recibida: por cada línea suma
// la cantidad en la bodega destino y registra un ingreso; al final recalcula
// el costo promedio de cada ítem afectado. Todo dentro de una transacción.
type ReceivePurchaseUseCase struct {
	txRunner TxRunner
	cache    StockCache
}

// NewReceivePurchaseUseCase construye el caso de uso. cache puede ser nil.
func NewReceivePurchaseUseCase(txRunner TxRunner, cache StockCache) *ReceivePurchaseUseCase {
	return &ReceivePurchaseUseCase{txRunner: txRunner, cache: cache}
}

// Receive ejecuta la recepción. Recibir una compra ya recibida es un no-op
// (cero movimientos, stock intacto); cualquier otro estado que no admita la
// transición a recibida falla con InvalidStateTransitionError.
func (uc *ReceivePurchaseUseCase) Receive(ctx context.Context, purchaseID, actorID string) (*StockTransactionResult, error) {
	if purchaseID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *StockTransactionResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		purchase, err := r.Purchases.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return &domain.ReferentialIntegrityError{Entity: "compra", ID: purchaseID}
		}
		if purchase.Status == entity.PurchaseRecibida {
			// recepción idempotente
			result = &StockTransactionResult{}
			return nil
		}
		if !purchase.Status.CanTransitionTo(entity.PurchaseRecibida) {
			return &domain.InvalidStateTransitionError{
				DocumentID: purchase.ID,
				Current:    purchase.Status.String(),
				Requested:  entity.PurchaseRecibida.String(),
			}
		}

		now := time.Now()
		res := &StockTransactionResult{}
		touched := make(map[string]struct{})
		for _, line := range purchase.Items {
			stock, mov, err := applyIngreso(r, line.ItemID, line.WarehouseID,
				line.Quantity, line.UnitCost, entity.ReasonCompra, purchase.Number, actorID, now)
			if err != nil {
				return err
			}
			res.append(stock, mov)
			touched[line.ItemID] = struct{}{}
		}

		// Recalcular costo promedio de cada ítem afectado con los
		// movimientos ya dentro de esta misma transacción.
		for itemID := range touched {
			avg, err := r.Movements.AverageReceiptCost(itemID)
			if err != nil {
				return err
			}
			if err := r.Items.UpdateAverageCost(itemID, avg); err != nil {
				return err
			}
		}

		purchase.Status = entity.PurchaseRecibida
		purchase.ReceivedAt = &now
		purchase.UpdatedAt = now
		if err := r.Purchases.UpdateStatus(purchase); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, result)
	return result, nil
}

// invalidate borra del caché las claves tocadas por una transacción ya
// commiteada. Compartido por todos los casos de uso del motor.
func invalidate(ctx context.Context, cache StockCache, result *StockTransactionResult) {
	if cache == nil || result == nil {
		return
	}
	if keys := result.Keys(); len(keys) > 0 {
		cache.Invalidate(ctx, keys...)
	}
}
