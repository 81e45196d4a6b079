package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// StockHandler maneja consultas de existencias y kardex, y el ajuste manual.
type StockHandler struct {
	queries *usecase.StockQueryUseCase
	adjust  *inventory.AdjustStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queries *usecase.StockQueryUseCase, adjust *inventory.AdjustStockUseCase) *StockHandler {
	return &StockHandler{queries: queries, adjust: adjust}
}

// GetLevel devuelve la existencia de un ítem en una bodega (cantidad cero si
// la fila aún no existe).
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	stock, err := h.queries.GetLevel(c.Context(), c.Query("item_id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockResponse(stock))
}

// ListByWarehouse lista las existencias de una bodega.
func (h *StockHandler) ListByWarehouse(c *fiber.Ctx) error {
	stocks, err := h.queries.ListByWarehouse(c.Params("warehouseID"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewStockResponse(s))
	}
	return c.JSON(out)
}

// ListBelowMinimum lista las existencias por debajo del mínimo del ítem.
func (h *StockHandler) ListBelowMinimum(c *fiber.Ctx) error {
	alerts, err := h.queries.ListBelowMinimum(c.Params("warehouseID"))
	if err != nil {
		return respondError(c, err)
	}
	type alertResponse struct {
		Stock dto.StockResponse `json:"stock"`
		Item  *dto.ItemResponse `json:"item,omitempty"`
	}
	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp := alertResponse{Stock: dto.NewStockResponse(a.Stock)}
		if a.Item != nil {
			item := dto.NewItemResponse(a.Item)
			resp.Item = &item
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}

// KardexByItem lista el historial de movimientos de un ítem.
func (h *StockHandler) KardexByItem(c *fiber.Ctx) error {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	movements, err := h.queries.KardexByItem(c.Params("itemID"), from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementResponses(movements))
}

// KardexByWarehouse lista los movimientos de una bodega.
func (h *StockHandler) KardexByWarehouse(c *fiber.Ctx) error {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	movements, err := h.queries.KardexByWarehouse(c.Params("warehouseID"), from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementResponses(movements))
}

// KardexByReference lista los movimientos generados por un documento.
func (h *StockHandler) KardexByReference(c *fiber.Ctx) error {
	movements, err := h.queries.KardexByReference(c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementResponses(movements))
}

// Adjust registra un ajuste manual de stock (merma, conteo físico, donación).
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjust.Adjust(c.Context(), inventory.AdjustStockInput{
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Direction:   in.Direction,
		Reason:      in.Reason,
		UnitCost:    in.UnitCost,
	}, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockTransactionResponse(result))
}

func movementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out
}

func dateRangeFromQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
