package repository

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos de venta.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera para el cambio de estado.
	GetForUpdate(id string) (*entity.Order, error)
	List(status entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus persiste estado y datos de pago.
	UpdateStatus(order *entity.Order) error
}
