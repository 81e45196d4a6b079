package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// ItemUseCase casos de uso de ítems (insumos y productos terminados).
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem con código único. El costo promedio inicia en 0 y solo
// lo escribe el motor de inventario al recibir compras.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.ItemKindInsumo && in.Kind != entity.ItemKindProducto {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.StockMinimum.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Kind:         in.Kind,
		UnitMeasure:  in.UnitMeasure,
		Price:        in.Price,
		AverageCost:  decimal.Zero,
		StockMinimum: in.StockMinimum,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un ítem.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// Update actualiza nombre, unidad, precio y mínimo. El código y el costo
// promedio no se modifican por esta vía.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.StockMinimum.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Name = in.Name
	if in.UnitMeasure != "" {
		item.UnitMeasure = in.UnitMeasure
	}
	item.Price = in.Price
	item.StockMinimum = in.StockMinimum
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// List lista ítems.
func (uc *ItemUseCase) List(page dto.PageRequest) ([]dto.ItemResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.NewItemResponse(it))
	}
	return out, nil
}
