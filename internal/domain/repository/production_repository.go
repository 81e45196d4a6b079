package repository

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// ProductionRepository puerto de persistencia para órdenes de producción.
type ProductionRepository interface {
	Create(production *entity.Production) error
	GetByID(id string) (*entity.Production, error)
	// GetForUpdate bloquea la cabecera para el cambio de estado.
	GetForUpdate(id string) (*entity.Production, error)
	List(status entity.ProductionStatus, limit, offset int) ([]*entity.Production, error)
	// UpdateStatus persiste estado, fechas y cantidad producida.
	UpdateStatus(production *entity.Production) error
}
