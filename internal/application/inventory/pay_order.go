package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// PaymentInput datos del pago de un pedido. Si Amount es cero se toma el
// total del pedido.
type PaymentInput struct {
	Method string // efectivo, tarjeta, transferencia
	Amount decimal.Decimal
}

// PayOrderUseCase cobra un pedido: revalida disponibilidad línea por línea
// sobre filas bloqueadas, descuenta el stock, registra un egreso por línea y
// persiste los datos de pago. Todo-o-nada sobre el pedido completo: si una
// sola línea no tiene stock, ninguna se descuenta.
type PayOrderUseCase struct {
	txRunner TxRunner
	cache    StockCache
}

// NewPayOrderUseCase construye el caso de uso. cache puede ser nil.
func NewPayOrderUseCase(txRunner TxRunner, cache StockCache) *PayOrderUseCase {
	return &PayOrderUseCase{txRunner: txRunner, cache: cache}
}

// Pay ejecuta el cobro del pedido.
func (uc *PayOrderUseCase) Pay(ctx context.Context, orderID string, payment PaymentInput, actorID string) (*StockTransactionResult, error) {
	if orderID == "" || actorID == "" || payment.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	if payment.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *StockTransactionResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		order, err := r.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.ReferentialIntegrityError{Entity: "pedido", ID: orderID}
		}
		if !order.Status.CanTransitionTo(entity.OrderPagado) {
			return &domain.InvalidStateTransitionError{
				DocumentID: order.ID,
				Current:    order.Status.String(),
				Requested:  entity.OrderPagado.String(),
			}
		}

		now := time.Now()
		res := &StockTransactionResult{}
		for _, line := range order.Items {
			// El stock pudo moverse entre la creación del pedido y el
			// pago: la suficiencia se decide aquí, sobre la fila bloqueada.
			stock, mov, err := applyEgreso(r, line.ItemID, line.WarehouseID,
				line.Quantity, entity.ReasonVenta, order.Number, actorID, now)
			if err != nil {
				return err
			}
			res.append(stock, mov)
		}

		amount := payment.Amount
		if amount.IsZero() {
			amount = order.Total()
		}
		order.Status = entity.OrderPagado
		order.PaymentMethod = payment.Method
		order.PaidAmount = amount
		order.PaidAt = &now
		order.UpdatedAt = now
		if err := r.Orders.UpdateStatus(order); err != nil {
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
