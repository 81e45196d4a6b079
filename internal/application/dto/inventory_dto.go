package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// AdjustStockRequest ajuste manual de stock.
type AdjustStockRequest struct {
	ItemID      string           `json:"item_id"`
	WarehouseID string           `json:"warehouse_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Direction   string           `json:"direction"` // ingreso | egreso
	Reason      string           `json:"reason"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
}

// PayOrderRequest datos de pago de un pedido.
type PayOrderRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// CompleteProductionRequest cierre de una orden de producción.
type CompleteProductionRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// StockResponse fila del libro de existencias.
type StockResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse entrada del kardex.
type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reason      string          `json:"reason"`
	Reference   string          `json:"reference"`
	ActorID     string          `json:"actor_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockTransactionResponse resultado de una operación del motor de inventario.
type StockTransactionResponse struct {
	Stocks    []StockResponse    `json:"stocks"`
	Movements []MovementResponse `json:"movements"`
}

// NewStockTransactionResponse mapea el resultado del motor a la respuesta HTTP.
func NewStockTransactionResponse(result *inventory.StockTransactionResult) StockTransactionResponse {
	resp := StockTransactionResponse{
		Stocks:    make([]StockResponse, 0, len(result.Stocks)),
		Movements: make([]MovementResponse, 0, len(result.Movements)),
	}
	for _, s := range result.Stocks {
		resp.Stocks = append(resp.Stocks, NewStockResponse(s))
	}
	for _, m := range result.Movements {
		resp.Movements = append(resp.Movements, NewMovementResponse(m))
	}
	return resp
}

// NewStockResponse mapea una fila de stock.
func NewStockResponse(s *entity.Stock) StockResponse {
	return StockResponse{
		ItemID:      s.ItemID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UpdatedAt:   s.UpdatedAt,
	}
}

// NewMovementResponse mapea un movimiento.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		ItemID:      m.ItemID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Reason:      m.Reason,
		Reference:   m.Reference,
		ActorID:     m.ActorID,
		CreatedAt:   m.CreatedAt,
	}
}
