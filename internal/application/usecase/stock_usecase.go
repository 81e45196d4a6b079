package usecase

import (
	"context"
	"time"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// StockLevelCache puerto de lectura del caché de existencias. Las fallas del
// caché no son errores del caso de uso: un miss degrada a la BD.
type StockLevelCache interface {
	Get(ctx context.Context, itemID, warehouseID string) (*entity.Stock, bool)
	Set(ctx context.Context, stock *entity.Stock)
}

// StockQueryUseCase consultas de existencias y kardex. Solo lectura; las
// mutaciones pasan por el motor de inventario.
type StockQueryUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
	cache        StockLevelCache
}

// NewStockQueryUseCase construye el caso de uso. cache puede ser nil.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	cache StockLevelCache,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		cache:        cache,
	}
}

// GetLevel devuelve la existencia de un ítem en una bodega, pasando primero
// por el caché. Si la fila no existe se responde cantidad cero.
func (uc *StockQueryUseCase) GetLevel(ctx context.Context, itemID, warehouseID string) (*entity.Stock, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		if stock, ok := uc.cache.Get(ctx, itemID, warehouseID); ok {
			return stock, nil
		}
	}
	stock, err := uc.stockRepo.Get(itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, stock)
	}
	return stock, nil
}

// ListByWarehouse lista las existencias de una bodega.
func (uc *StockQueryUseCase) ListByWarehouse(warehouseID string, page dto.PageRequest) ([]*entity.Stock, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.stockRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
}

// LowStockAlert fila de stock por debajo del mínimo, con el ítem resuelto.
type LowStockAlert struct {
	Stock *entity.Stock
	Item  *entity.Item
}

// ListBelowMinimum lista las existencias por debajo del mínimo configurado
// del ítem, para la alerta de reposición.
func (uc *StockQueryUseCase) ListBelowMinimum(warehouseID string) ([]LowStockAlert, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	stocks, err := uc.stockRepo.ListBelowMinimum(warehouseID)
	if err != nil {
		return nil, err
	}
	alerts := make([]LowStockAlert, 0, len(stocks))
	for _, s := range stocks {
		item, err := uc.itemRepo.GetByID(s.ItemID)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, LowStockAlert{Stock: s, Item: item})
	}
	return alerts, nil
}

// KardexByItem lista el historial de movimientos de un ítem, opcionalmente
// acotado por fecha.
func (uc *StockQueryUseCase) KardexByItem(itemID string, from, to *time.Time, page dto.PageRequest) ([]*entity.Movement, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.movementRepo.ListByItem(itemID, from, to, page.Limit, page.Offset)
}

// KardexByWarehouse lista los movimientos de una bodega.
func (uc *StockQueryUseCase) KardexByWarehouse(warehouseID string, from, to *time.Time, page dto.PageRequest) ([]*entity.Movement, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.movementRepo.ListByWarehouse(warehouseID, from, to, page.Limit, page.Offset)
}

// KardexByReference lista los movimientos generados por un documento
// (número de compra, pedido u orden de producción).
func (uc *StockQueryUseCase) KardexByReference(reference string) ([]*entity.Movement, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByReference(reference)
}
