package repository

import (
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia para ítems (insumos y productos).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateAverageCost escribe el costo promedio recalculado.
	UpdateAverageCost(itemID string, cost decimal.Decimal) error
}
