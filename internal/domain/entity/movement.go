package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementIngreso = "ingreso" // entrada de stock
	MovementEgreso  = "egreso"  // salida de stock
)

// Motivos estándar de movimiento; los ajustes manuales llevan el motivo libre
// que indique el usuario.
const (
	ReasonCompra     = "Compra"
	ReasonVenta      = "Venta"
	ReasonProduccion = "Producción"
)

// ReferenceManual es la referencia de los ajustes manuales de stock.
const ReferenceManual = "MANUAL"

// Movement es el registro inmutable de auditoría de un cambio de stock.
// Se crea exactamente uno por cada cambio de cantidad; nunca se modifica ni
// se borra. Quantity siempre es positiva: la dirección la da Type.
type Movement struct {
	ID          string
	Type        string // ingreso | egreso
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Reason      string // Compra, Venta, Producción o motivo manual
	Reference   string // número del documento de negocio o MANUAL
	ActorID     string
	CreatedAt   time.Time
}

// Delta devuelve el efecto del movimiento sobre la cantidad en bodega:
// +Quantity para ingreso, -Quantity para egreso.
func (m *Movement) Delta() decimal.Decimal {
	if m.Type == MovementEgreso {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
