package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido de venta.
type OrderStatus string

// Estados de pedido. El stock NO se reserva al crear el pedido: la
// disponibilidad se revalida al momento del pago (la ventana entre creación
// y pago puede dejar el pedido sin stock; eso se reporta, no se ignora).
const (
	OrderPendiente OrderStatus = "pendiente"
	OrderPagado    OrderStatus = "pagado"
	OrderEntregado OrderStatus = "entregado"
	OrderCancelado OrderStatus = "cancelado"
)

// IsValid indica si el estado es uno de los conocidos.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPendiente, OrderPagado, OrderEntregado, OrderCancelado:
		return true
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// CanTransitionTo tabla de transiciones legales:
// pendiente → pagado → entregado; cancelado solo desde pendiente.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderPendiente:
		return target == OrderPagado || target == OrderCancelado
	case OrderPagado:
		return target == OrderEntregado
	}
	return false
}

// Order representa un pedido de venta. Los datos de pago son campos
// persistidos explícitos, no texto libre en las notas.
type Order struct {
	ID            string
	Number        string // número de documento, ej. PED-000045
	CustomerName  string
	Status        OrderStatus
	Notes         string
	Items         []OrderItem
	PaymentMethod string // efectivo, tarjeta, transferencia
	PaidAmount    decimal.Decimal
	PaidAt        *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem línea de pedido: ítem, bodega de despacho, cantidad y precio.
type OrderItem struct {
	ID          string
	OrderID     string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Total devuelve el valor total del pedido.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}
