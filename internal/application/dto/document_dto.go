package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// PurchaseLineRequest línea de compra.
type PurchaseLineRequest struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest alta de compra (nace en borrador).
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Notes      string                `json:"notes"`
	Items      []PurchaseLineRequest `json:"items"`
}

// PurchaseResponse compra con sus líneas.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	Number     string                 `json:"number"`
	SupplierID string                 `json:"supplier_id"`
	Status     string                 `json:"status"`
	Total      decimal.Decimal        `json:"total"`
	Items      []PurchaseLineResponse `json:"items"`
	ReceivedAt *time.Time             `json:"received_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// PurchaseLineResponse línea de compra.
type PurchaseLineResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// NewPurchaseResponse mapea una compra.
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:         p.ID,
		Number:     p.Number,
		SupplierID: p.SupplierID,
		Status:     p.Status.String(),
		Total:      p.Total(),
		ReceivedAt: p.ReceivedAt,
		CreatedAt:  p.CreatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, PurchaseLineResponse{
			ItemID:      it.ItemID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	return resp
}

// OrderLineRequest línea de pedido.
type OrderLineRequest struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest alta de pedido (nace pendiente; no reserva stock).
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Notes        string             `json:"notes"`
	Items        []OrderLineRequest `json:"items"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	CustomerName  string              `json:"customer_name"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	Items         []OrderLineResponse `json:"items"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderLineResponse línea de pedido.
type OrderLineResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NewOrderResponse mapea un pedido.
func NewOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerName:  o.CustomerName,
		Status:        o.Status.String(),
		Total:         o.Total(),
		PaymentMethod: o.PaymentMethod,
		PaidAmount:    o.PaidAmount,
		PaidAt:        o.PaidAt,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderLineResponse{
			ItemID:      it.ItemID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}

// CreateProductionRequest alta de orden de producción (nace pendiente).
type CreateProductionRequest struct {
	RecipeID    string          `json:"recipe_id"`
	WarehouseID string          `json:"warehouse_id"`
	BatchSize   decimal.Decimal `json:"batch_size"`
}

// ProductionResponse orden de producción.
type ProductionResponse struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	RecipeID         string          `json:"recipe_id"`
	WarehouseID      string          `json:"warehouse_id"`
	BatchSize        decimal.Decimal `json:"batch_size"`
	PlannedQuantity  decimal.Decimal `json:"planned_quantity"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	Status           string          `json:"status"`
	StartedAt        *time.Time      `json:"started_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewProductionResponse mapea una orden de producción.
func NewProductionResponse(p *entity.Production) ProductionResponse {
	return ProductionResponse{
		ID:               p.ID,
		Number:           p.Number,
		RecipeID:         p.RecipeID,
		WarehouseID:      p.WarehouseID,
		BatchSize:        p.BatchSize,
		PlannedQuantity:  p.PlannedQuantity,
		ProducedQuantity: p.ProducedQuantity,
		Status:           p.Status.String(),
		StartedAt:        p.StartedAt,
		CompletedAt:      p.CompletedAt,
		CreatedAt:        p.CreatedAt,
	}
}

// CreateRecipeRequest alta de receta.
type CreateRecipeRequest struct {
	Name        string              `json:"name"`
	ItemID      string              `json:"item_id"`
	YieldPerLot decimal.Decimal     `json:"yield_per_lot"`
	Items       []RecipeLineRequest `json:"items"`
}

// RecipeLineRequest insumo de receta.
type RecipeLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RecipeResponse receta con sus insumos.
type RecipeResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	ItemID      string               `json:"item_id"`
	YieldPerLot decimal.Decimal      `json:"yield_per_lot"`
	Items       []RecipeLineResponse `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
}

// RecipeLineResponse insumo de receta persistido.
type RecipeLineResponse struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewRecipeResponse mapea una receta.
func NewRecipeResponse(r *entity.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		ItemID:      r.ItemID,
		YieldPerLot: r.YieldPerLot,
		CreatedAt:   r.CreatedAt,
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, RecipeLineResponse{ID: it.ID, ItemID: it.ItemID, Quantity: it.Quantity})
	}
	return resp
}
