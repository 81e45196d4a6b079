package repository

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// PurchaseRepository puerto de persistencia para compras a proveedor.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	// GetByID devuelve la compra con sus líneas.
	GetByID(id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la cabecera para el cambio de estado.
	GetForUpdate(id string) (*entity.Purchase, error)
	List(status entity.PurchaseStatus, limit, offset int) ([]*entity.Purchase, error)
	// UpdateStatus persiste la transición de estado ya validada por el dominio.
	UpdateStatus(purchase *entity.Purchase) error
}
