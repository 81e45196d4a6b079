package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
)

// ProductionHandler maneja órdenes de producción. Iniciar descuenta insumos y
// completar ingresa producto terminado, ambos vía el motor de inventario.
type ProductionHandler struct {
	uc     *usecase.ProductionUseCase
	engine *inventory.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *usecase.ProductionUseCase, engine *inventory.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc, engine: engine}
}

// Create crea una orden de producción pendiente.
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una orden de producción.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista órdenes de producción, filtrables por estado.
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start inicia la producción: descuenta los insumos de la receta según los
// lotes planificados. La suficiencia se revalida aquí, no al crear la orden.
func (h *ProductionHandler) Start(c *fiber.Ctx) error {
	result, err := h.engine.Start(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockTransactionResponse(result))
}

// Complete cierra la producción: ingresa el producto terminado por la
// cantidad realmente producida, que puede diferir de la planificada.
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.Complete(c.Context(), c.Params("id"), in.ActualQuantity, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockTransactionResponse(result))
}

// Cancel cancela la orden (antes de completarla). Los insumos ya consumidos
// no se devuelven automáticamente; eso se corrige con un ajuste manual.
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
