package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un ítem en una bodega.
// La fila se crea con el primer movimiento hacia la bodega y nunca se borra
// (la cantidad puede llegar a 0). Invariante: Quantity nunca queda negativa
// como resultado de un egreso.
type Stock struct {
	ItemID       string
	WarehouseID  string
	Quantity     decimal.Decimal
	StockMinimum decimal.Decimal
	StockMaximum decimal.Decimal // 0 = sin tope definido
	UpdatedAt    time.Time
}
