package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

// Estados de producción. iniciar (pendiente → en_proceso) descuenta los
// insumos de la receta; completar (en_proceso → completado) ingresa el
// producto terminado por la cantidad realmente producida.
const (
	ProductionPendiente  ProductionStatus = "pendiente"
	ProductionEnProceso  ProductionStatus = "en_proceso"
	ProductionCompletado ProductionStatus = "completado"
	ProductionCancelado  ProductionStatus = "cancelado"
)

// IsValid indica si el estado es uno de los conocidos.
func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionPendiente, ProductionEnProceso, ProductionCompletado, ProductionCancelado:
		return true
	}
	return false
}

func (s ProductionStatus) String() string { return string(s) }

// CanTransitionTo tabla de transiciones legales:
// pendiente → en_proceso → completado; cancelado antes de completado.
func (s ProductionStatus) CanTransitionTo(target ProductionStatus) bool {
	switch s {
	case ProductionPendiente:
		return target == ProductionEnProceso || target == ProductionCancelado
	case ProductionEnProceso:
		return target == ProductionCompletado || target == ProductionCancelado
	}
	return false
}

// Production representa una orden de producción: cuántos lotes (BatchSize)
// de la receta se van a producir y en qué bodega entra el producto terminado.
type Production struct {
	ID               string
	Number           string // número de documento, ej. PR-000031
	RecipeID         string
	WarehouseID      string
	BatchSize        decimal.Decimal // lotes planificados
	PlannedQuantity  decimal.Decimal // unidades esperadas
	ProducedQuantity decimal.Decimal // unidades reales; puede diferir de lo planificado
	Status           ProductionStatus
	StartedAt        *time.Time
	CompletedAt      *time.Time
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
