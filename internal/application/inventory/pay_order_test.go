package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

func seedOrderFixture(store *memoryStore, qtyOnHand, qtyRequested string) {
	store.items["pan"] = entity.Item{
		ID: "pan", Code: "PRD-001", Name: "Pan campesino",
		Kind: entity.ItemKindProducto, Price: d("2.50"), AverageCost: d("0.80"),
	}
	store.warehouses[warehouseID] = entity.Warehouse{ID: warehouseID, Name: "Bodega Central"}
	store.setStock("pan", warehouseID, qtyOnHand)
	store.orders["pedido-1"] = entity.Order{
		ID:           "pedido-1",
		Number:       "PED-000045",
		CustomerName: "Cafetería La Esquina",
		Status:       entity.OrderPendiente,
		Items: []entity.OrderItem{
			{OrderID: "pedido-1", ItemID: "pan", WarehouseID: warehouseID, Quantity: d(qtyRequested), UnitPrice: d("2.50")},
		},
	}
}

func TestPayOrder_DescuentaStockYRegistraPago(t *testing.T) {
	store := newMemoryStore()
	seedOrderFixture(store, "20", "8")
	cache := &cacheSpy{}
	uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: store}, cache)

	result, err := uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{Method: "efectivo"}, actorID)
	require.NoError(t, err)
	require.Len(t, result.Movements, 1)

	mov := result.Movements[0]
	assert.Equal(t, entity.MovementEgreso, mov.Type)
	assert.Equal(t, entity.ReasonVenta, mov.Reason)
	assert.Equal(t, "PED-000045", mov.Reference)
	assert.True(t, d("8").Equal(mov.Quantity))
	assert.True(t, d("0.80").Equal(mov.UnitCost), "la salida se valora al costo promedio")

	assert.True(t, d("12").Equal(store.quantity("pan", warehouseID)))
	order := store.orders["pedido-1"]
	assert.Equal(t, entity.OrderPagado, order.Status)
	assert.Equal(t, "efectivo", order.PaymentMethod)
	assert.True(t, d("20").Equal(order.PaidAmount), "monto por defecto = total del pedido")
	require.NotNil(t, order.PaidAt)
	assert.Len(t, cache.keys, 1)
}

// Escenario B: 5 disponibles, pedido de 8 → falla sin tocar nada.
func TestPayOrder_StockInsuficiente(t *testing.T) {
	store := newMemoryStore()
	seedOrderFixture(store, "5", "8")
	uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: store}, nil)

	_, err := uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{Method: "tarjeta"}, actorID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "pan", stockErr.ItemID)
	assert.Equal(t, warehouseID, stockErr.WarehouseID)
	assert.True(t, d("8").Equal(stockErr.Requested))
	assert.True(t, d("5").Equal(stockErr.Available))

	assert.True(t, d("5").Equal(store.quantity("pan", warehouseID)), "cantidad intacta")
	assert.Empty(t, store.movements, "cero movimientos")
	assert.Equal(t, entity.OrderPendiente, store.orders["pedido-1"].Status)
}

// Todo-o-nada: si la segunda línea falla, la primera tampoco se descuenta.
func TestPayOrder_TodoONada(t *testing.T) {
	store := newMemoryStore()
	seedOrderFixture(store, "20", "8")
	store.items["torta"] = entity.Item{
		ID: "torta", Code: "PRD-002", Name: "Torta de vainilla",
		Kind: entity.ItemKindProducto, Price: d("15"), AverageCost: d("6"),
	}
	store.setStock("torta", warehouseID, "1")
	order := store.orders["pedido-1"]
	order.Items = append(order.Items, entity.OrderItem{
		OrderID: "pedido-1", ItemID: "torta", WarehouseID: warehouseID, Quantity: d("3"), UnitPrice: d("15"),
	})
	store.orders["pedido-1"] = order
	uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: store}, nil)

	_, err := uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{Method: "efectivo"}, actorID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "torta", stockErr.ItemID)

	assert.True(t, d("20").Equal(store.quantity("pan", warehouseID)), "la línea que sí alcanzaba tampoco se descuenta")
	assert.True(t, d("1").Equal(store.quantity("torta", warehouseID)))
	assert.Empty(t, store.movements)
}

func TestPayOrder_EstadoInvalido(t *testing.T) {
	for _, status := range []entity.OrderStatus{entity.OrderPagado, entity.OrderEntregado, entity.OrderCancelado} {
		t.Run(status.String(), func(t *testing.T) {
			store := newMemoryStore()
			seedOrderFixture(store, "20", "8")
			order := store.orders["pedido-1"]
			order.Status = status
			store.orders["pedido-1"] = order
			uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: store}, nil)

			_, err := uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{Method: "efectivo"}, actorID)
			var stateErr *domain.InvalidStateTransitionError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status.String(), stateErr.Current)
			assert.Empty(t, store.movements)
		})
	}
}

func TestPayOrder_PedidoInexistente(t *testing.T) {
	uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: newMemoryStore()}, nil)
	_, err := uc.Pay(context.Background(), "nada", inventory.PaymentInput{Method: "efectivo"}, actorID)
	var refErr *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "pedido", refErr.Entity)
}

func TestPayOrder_EntradaInvalida(t *testing.T) {
	uc := inventory.NewPayOrderUseCase(&memoryTxRunner{store: newMemoryStore()}, nil)

	_, err := uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{}, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago requerido")

	_, err = uc.Pay(context.Background(), "pedido-1", inventory.PaymentInput{Method: "efectivo", Amount: d("-1")}, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
