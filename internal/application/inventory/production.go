package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// ProductionUseCase maneja el ciclo de una orden de producción sobre el
// inventario: Start descuenta los insumos de la receta, Complete ingresa el
// producto terminado. Cada paso es una transacción independiente.
type ProductionUseCase struct {
	txRunner TxRunner
	cache    StockCache
}

// NewProductionUseCase construye el caso de uso. cache puede ser nil.
func NewProductionUseCase(txRunner TxRunner, cache StockCache) *ProductionUseCase {
	return &ProductionUseCase{txRunner: txRunner, cache: cache}
}

// Start pasa la producción de pendiente a en_proceso descontando cada insumo
// por (cantidad de receta × lotes). La suficiencia se revalida aquí aunque
// se haya validado al crear la orden: el stock pudo moverse entre ambos
// momentos.
func (uc *ProductionUseCase) Start(ctx context.Context, productionID, actorID string) (*StockTransactionResult, error) {
	if productionID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *StockTransactionResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		production, err := r.Productions.GetForUpdate(productionID)
		if err != nil {
			return err
		}
		if production == nil {
			return &domain.ReferentialIntegrityError{Entity: "producción", ID: productionID}
		}
		if !production.Status.CanTransitionTo(entity.ProductionEnProceso) {
			return &domain.InvalidStateTransitionError{
				DocumentID: production.ID,
				Current:    production.Status.String(),
				Requested:  entity.ProductionEnProceso.String(),
			}
		}
		recipe, err := r.Recipes.GetByID(production.RecipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return &domain.ReferentialIntegrityError{Entity: "receta", ID: production.RecipeID}
		}

		now := time.Now()
		res := &StockTransactionResult{}
		for _, ingredient := range recipe.Items {
			required := ingredient.Quantity.Mul(production.BatchSize)
			stock, mov, err := applyEgreso(r, ingredient.ItemID, production.WarehouseID,
				required, entity.ReasonProduccion, production.Number, actorID, now)
			if err != nil {
				return err
			}
			res.append(stock, mov)
		}

		production.Status = entity.ProductionEnProceso
		production.StartedAt = &now
		production.UpdatedAt = now
		if err := r.Productions.UpdateStatus(production); err != nil {
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

// Complete pasa la producción de en_proceso a completado e ingresa el
// producto terminado por la cantidad realmente producida (puede diferir de
// la planificada), al precio de referencia vigente del ítem.
func (uc *ProductionUseCase) Complete(ctx context.Context, productionID string, actualQuantity decimal.Decimal, actorID string) (*StockTransactionResult, error) {
	if productionID == "" || actorID == "" || !actualQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *StockTransactionResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		production, err := r.Productions.GetForUpdate(productionID)
		if err != nil {
			return err
		}
		if production == nil {
			return &domain.ReferentialIntegrityError{Entity: "producción", ID: productionID}
		}
		if !production.Status.CanTransitionTo(entity.ProductionCompletado) {
			return &domain.InvalidStateTransitionError{
				DocumentID: production.ID,
				Current:    production.Status.String(),
				Requested:  entity.ProductionCompletado.String(),
			}
		}
		recipe, err := r.Recipes.GetByID(production.RecipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return &domain.ReferentialIntegrityError{Entity: "receta", ID: production.RecipeID}
		}
		item, err := r.Items.GetByID(recipe.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.ReferentialIntegrityError{Entity: "ítem", ID: recipe.ItemID}
		}

		now := time.Now()
		res := &StockTransactionResult{}
		stock, mov, err := applyIngreso(r, recipe.ItemID, production.WarehouseID,
			actualQuantity, item.Price, entity.ReasonProduccion, production.Number, actorID, now)
		if err != nil {
			return err
		}
		res.append(stock, mov)

		production.Status = entity.ProductionCompletado
		production.ProducedQuantity = actualQuantity
		production.CompletedAt = &now
		production.UpdatedAt = now
		if err := r.Productions.UpdateStatus(production); err != nil {
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
