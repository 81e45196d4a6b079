package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
)

// OrderHandler maneja pedidos de venta. El pago descuenta stock vía el motor
// de inventario (todo-o-nada); crear el pedido no reserva nada.
type OrderHandler struct {
	uc  *usecase.OrderUseCase
	pay *inventory.PayOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, pay *inventory.PayOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pay: pay}
}

// Create crea un pedido pendiente. Valida disponibilidad de forma informativa
// pero no reserva: la verificación definitiva ocurre al pagar.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un pedido con sus líneas.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista pedidos, filtrables por estado.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay cobra el pedido: descuenta el stock de todas las líneas en una sola
// transacción. Si alguna línea no alcanza, nada se descuenta y responde 409.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.pay.Pay(c.Context(), c.Params("id"), inventory.PaymentInput{
		Method: in.Method,
		Amount: in.Amount,
	}, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockTransactionResponse(result))
}

// Deliver marca el pedido pagado como entregado.
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.uc.Deliver(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela un pedido pendiente.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
