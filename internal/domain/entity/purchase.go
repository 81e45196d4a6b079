package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una compra a proveedor.
type PurchaseStatus string

// Estados de compra. Solo la transición a recibida muta el inventario.
const (
	PurchaseBorrador  PurchaseStatus = "borrador"
	PurchasePendiente PurchaseStatus = "pendiente"
	PurchaseRecibida  PurchaseStatus = "recibida"
	PurchaseFacturada PurchaseStatus = "facturada"
	PurchasePagada    PurchaseStatus = "pagada"
	PurchaseCancelada PurchaseStatus = "cancelada"
)

// IsValid indica si el estado es uno de los conocidos.
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseBorrador, PurchasePendiente, PurchaseRecibida,
		PurchaseFacturada, PurchasePagada, PurchaseCancelada:
		return true
	}
	return false
}

func (s PurchaseStatus) String() string { return string(s) }

// CanTransitionTo define la tabla de transiciones legales:
// borrador → pendiente → recibida → facturada → pagada; cancelada solo
// desde borrador o pendiente. pagada y cancelada son terminales.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	switch s {
	case PurchaseBorrador:
		return target == PurchasePendiente || target == PurchaseCancelada
	case PurchasePendiente:
		return target == PurchaseRecibida || target == PurchaseCancelada
	case PurchaseRecibida:
		return target == PurchaseFacturada
	case PurchaseFacturada:
		return target == PurchasePagada
	}
	return false
}

// IsTerminal indica si el estado no admite ninguna transición.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchasePagada || s == PurchaseCancelada
}

// Purchase representa una compra a proveedor con sus líneas.
type Purchase struct {
	ID         string
	Number     string // número de documento, ej. OC-000123
	SupplierID string
	Status     PurchaseStatus
	Notes      string
	Items      []PurchaseItem
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseItem línea de compra: ítem, bodega destino, cantidad y costo unitario.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
}

// Total devuelve el valor total de la compra.
func (p *Purchase) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Quantity.Mul(it.UnitCost))
	}
	return total
}
