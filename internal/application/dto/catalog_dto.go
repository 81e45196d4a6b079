package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWarehouseResponse mapea una bodega.
func NewWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address, CreatedAt: w.CreatedAt}
}

// CreateItemRequest alta de ítem (insumo o producto terminado).
type CreateItemRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	UnitMeasure  string          `json:"unit_measure"`
	Price        decimal.Decimal `json:"price"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
}

// UpdateItemRequest actualización de ítem. El costo promedio no se toca aquí.
type UpdateItemRequest struct {
	Name         string          `json:"name"`
	UnitMeasure  string          `json:"unit_measure"`
	Price        decimal.Decimal `json:"price"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
}

// ItemResponse ítem.
type ItemResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	UnitMeasure  string          `json:"unit_measure"`
	Price        decimal.Decimal `json:"price"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
}

// NewItemResponse mapea un ítem.
func NewItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Code:         i.Code,
		Name:         i.Name,
		Kind:         i.Kind,
		UnitMeasure:  i.UnitMeasure,
		Price:        i.Price,
		AverageCost:  i.AverageCost,
		StockMinimum: i.StockMinimum,
	}
}
