package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe define cómo se produce un ítem terminado: los insumos que consume
// un lote y cuántas unidades rinde.
type Recipe struct {
	ID          string
	Name        string
	ItemID      string          // ítem terminado que produce
	YieldPerLot decimal.Decimal // unidades de producto por lote
	Items       []RecipeItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeItem insumo de la receta con la cantidad requerida por lote.
type RecipeItem struct {
	ID       string
	RecipeID string
	ItemID   string
	Quantity decimal.Decimal // cantidad por lote
}
