package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem.
const (
	ItemKindInsumo   = "insumo"   // materia prima (harina, azúcar, levadura)
	ItemKindProducto = "producto" // producto terminado (pan, torta)
)

// Item representa un insumo o producto terminado del inventario.
// AverageCost es derivado: se recalcula desde el historial de movimientos de
// compra en cada recepción; inicia en 0.
type Item struct {
	ID           string
	Code         string          // código único
	Name         string
	Kind         string          // insumo | producto
	UnitMeasure  string          // kg, g, l, unidad
	Price        decimal.Decimal // precio de venta o referencia
	AverageCost  decimal.Decimal
	StockMinimum decimal.Decimal // umbral de alerta de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
