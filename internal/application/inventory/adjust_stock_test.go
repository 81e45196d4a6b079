package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

func newAdjustUseCase(store *memoryStore) *inventory.AdjustStockUseCase {
	return inventory.NewAdjustStockUseCase(
		&memoryTxRunner{store: store},
		nil,
		&memItemRepo{store: store},
		&memWarehouseRepo{store: store},
	)
}

func seedAdjustFixture(store *memoryStore, qty string) {
	store.items["levadura"] = entity.Item{
		ID: "levadura", Code: "INS-020", Name: "Levadura fresca",
		Kind: entity.ItemKindInsumo, AverageCost: d("1.10"),
	}
	store.warehouses[warehouseID] = entity.Warehouse{ID: warehouseID, Name: "Bodega Central"}
	if qty != "" {
		store.setStock("levadura", warehouseID, qty)
	}
}

func TestAdjustStock_IngresoCreaFilaYMovimiento(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "")
	uc := newAdjustUseCase(store)

	cost := d("1.25")
	result, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ItemID:      "levadura",
		WarehouseID: warehouseID,
		Quantity:    d("5"),
		Direction:   entity.MovementIngreso,
		Reason:      "Conteo físico",
		UnitCost:    &cost,
	}, actorID)
	require.NoError(t, err)
	require.Len(t, result.Movements, 1)

	mov := result.Movements[0]
	assert.Equal(t, entity.ReferenceManual, mov.Reference)
	assert.Equal(t, "Conteo físico", mov.Reason)
	assert.True(t, d("1.25").Equal(mov.UnitCost))
	assert.True(t, d("5").Equal(store.quantity("levadura", warehouseID)))
}

func TestAdjustStock_EgresoUsaCostoPromedio(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "8")
	uc := newAdjustUseCase(store)

	result, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ItemID:      "levadura",
		WarehouseID: warehouseID,
		Quantity:    d("3"),
		Direction:   entity.MovementEgreso,
		Reason:      "Merma",
	}, actorID)
	require.NoError(t, err)
	assert.True(t, d("1.10").Equal(result.Movements[0].UnitCost))
	assert.True(t, d("5").Equal(store.quantity("levadura", warehouseID)))
}

func TestAdjustStock_EgresoInsuficiente(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "2")
	uc := newAdjustUseCase(store)

	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ItemID:      "levadura",
		WarehouseID: warehouseID,
		Quantity:    d("3"),
		Direction:   entity.MovementEgreso,
		Reason:      "Merma",
	}, actorID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, d("2").Equal(stockErr.Available))
	assert.True(t, d("2").Equal(store.quantity("levadura", warehouseID)))
	assert.Empty(t, store.movements)
}

func TestAdjustStock_ReferenciasInexistentes(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "2")
	uc := newAdjustUseCase(store)

	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ItemID: "no-existe", WarehouseID: warehouseID,
		Quantity: d("1"), Direction: entity.MovementIngreso, Reason: "x",
	}, actorID)
	var refErr *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "ítem", refErr.Entity)

	_, err = uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ItemID: "levadura", WarehouseID: "bodega-fantasma",
		Quantity: d("1"), Direction: entity.MovementIngreso, Reason: "x",
	}, actorID)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "bodega", refErr.Entity)
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "2")
	uc := newAdjustUseCase(store)

	base := inventory.AdjustStockInput{
		ItemID: "levadura", WarehouseID: warehouseID,
		Quantity: d("1"), Direction: entity.MovementIngreso, Reason: "x",
	}

	in := base
	in.Direction = "traslado"
	_, err := uc.Adjust(context.Background(), in, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Quantity = d("0")
	_, err = uc.Adjust(context.Background(), in, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Reason = ""
	_, err = uc.Adjust(context.Background(), in, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), base, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Propiedad de ida y vuelta: la suma de los deltas de los movimientos desde
// la creación de la fila es igual a la cantidad actual.
func TestAdjustStock_SumaDeDeltasIgualAStock(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "")
	uc := newAdjustUseCase(store)
	ctx := context.Background()

	steps := []struct {
		direction string
		qty       string
	}{
		{entity.MovementIngreso, "10"},
		{entity.MovementEgreso, "4"},
		{entity.MovementIngreso, "2.5"},
		{entity.MovementEgreso, "1.5"},
	}
	for _, st := range steps {
		_, err := uc.Adjust(ctx, inventory.AdjustStockInput{
			ItemID: "levadura", WarehouseID: warehouseID,
			Quantity: d(st.qty), Direction: st.direction, Reason: "Ajuste",
		}, actorID)
		require.NoError(t, err)
	}

	sum := decimal.Zero
	for i := range store.movements {
		sum = sum.Add(store.movements[i].Delta())
	}
	assert.True(t, sum.Equal(store.quantity("levadura", warehouseID)),
		"suma de deltas %s != stock %s", sum, store.quantity("levadura", warehouseID))
	assert.True(t, d("7").Equal(sum))
}

// Propiedad concurrente: ajustes simultáneos sobre la misma clave nunca dejan
// la cantidad negativa y el resultado final es inicial + Σingresos − Σegresos
// de las transacciones que commitearon.
func TestAdjustStock_Concurrencia(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "10")
	uc := newAdjustUseCase(store)
	ctx := context.Background()

	const workers = 8
	egresoQty := d("4")

	var wg sync.WaitGroup
	var mu sync.Mutex
	committed := 0
	insufficient := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Adjust(ctx, inventory.AdjustStockInput{
				ItemID: "levadura", WarehouseID: warehouseID,
				Quantity: egresoQty, Direction: entity.MovementEgreso, Reason: "Merma",
			}, actorID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				committed++
				return
			}
			var stockErr *domain.InsufficientStockError
			if errors.As(err, &stockErr) {
				insufficient++
			}
		}()
	}
	wg.Wait()

	// Con 10 disponibles y egresos de 4, solo caben 2 commits.
	assert.Equal(t, 2, committed)
	assert.Equal(t, workers-2, insufficient)

	final := store.quantity("levadura", warehouseID)
	expected := d("10").Sub(egresoQty.Mul(decimal.NewFromInt(int64(committed))))
	assert.True(t, expected.Equal(final), "esperado %s, obtenido %s", expected, final)
	assert.False(t, final.IsNegative(), "la cantidad nunca queda negativa")
	assert.Len(t, store.movements, committed, "un movimiento por transacción commiteada")
}

// El primer movimiento sobre una clave (ítem, bodega) debe materializar la
// fila de stock ANTES de bloquearla: un FOR UPDATE sobre una fila inexistente
// no bloquea nada y dos primeros ingresos concurrentes se pisarían.
func TestAdjustStock_PrimerMovimientoMaterializaFilaAntesDeBloquear(t *testing.T) {
	store := newMemoryStore()
	seedAdjustFixture(store, "")
	uc := newAdjustUseCase(store)
	ctx := context.Background()

	cost := d("1.25")
	_, err := uc.Adjust(ctx, inventory.AdjustStockInput{
		ItemID: "levadura", WarehouseID: warehouseID,
		Quantity: d("5"), Direction: entity.MovementIngreso,
		Reason: "Conteo físico", UnitCost: &cost,
	}, actorID)
	require.NoError(t, err)
	assert.Empty(t, store.lockedWithoutRow, "GetForUpdate sobre fila inexistente")

	// El egreso sobre una clave sin fila también materializa antes de
	// bloquear; falla por insuficiencia, nunca por fila ausente.
	store.warehouses["bodega-nueva"] = entity.Warehouse{ID: "bodega-nueva", Name: "Bodega Nueva"}
	_, err = uc.Adjust(ctx, inventory.AdjustStockInput{
		ItemID: "levadura", WarehouseID: "bodega-nueva",
		Quantity: d("1"), Direction: entity.MovementEgreso, Reason: "Merma",
	}, actorID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Empty(t, store.lockedWithoutRow, "GetForUpdate sobre fila inexistente")
}
