package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// AdjustStockInput entrada de un ajuste manual de stock.
// UnitCost solo aplica a ingresos; si es nil se usa el costo promedio del ítem.
type AdjustStockInput struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	Direction   string // ingreso | egreso
	Reason      string // motivo libre (merma, conteo físico, donación)
	UnitCost    *decimal.Decimal
}

// AdjustStockUseCase registra un ajuste manual: un único movimiento con
// referencia MANUAL y el motivo indicado por el usuario. Los egresos se
// verifican contra la fila bloqueada igual que una venta.
type AdjustStockUseCase struct {
	txRunner      TxRunner
	cache         StockCache
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustStockUseCase construye el caso de uso. cache puede ser nil.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	cache StockCache,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:      txRunner,
		cache:         cache,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Adjust ejecuta el ajuste manual.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustStockInput, actorID string) (*StockTransactionResult, error) {
	if input.Direction != entity.MovementIngreso && input.Direction != entity.MovementEgreso {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) || input.Reason == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar referencias antes de abrir la transacción.
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "ítem", ID: input.ItemID}
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "bodega", ID: input.WarehouseID}
	}

	var result *StockTransactionResult
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		now := time.Now()
		res := &StockTransactionResult{}
		var stock *entity.Stock
		var mov *entity.Movement
		if input.Direction == entity.MovementIngreso {
			unitCost := item.AverageCost
			if input.UnitCost != nil {
				unitCost = *input.UnitCost
			}
			stock, mov, err = applyIngreso(r, input.ItemID, input.WarehouseID,
				input.Quantity, unitCost, input.Reason, entity.ReferenceManual, actorID, now)
		} else {
			stock, mov, err = applyEgreso(r, input.ItemID, input.WarehouseID,
				input.Quantity, input.Reason, entity.ReferenceManual, actorID, now)
		}
		if err != nil {
			return err
		}
		res.append(stock, mov)
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, result)
	return result, nil
}
