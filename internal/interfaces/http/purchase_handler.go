package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
)

// PurchaseHandler maneja el ciclo de vida de compras a proveedor.
// La recepción pasa por el motor de inventario; el resto son cambios de estado.
type PurchaseHandler struct {
	uc      *usecase.PurchaseUseCase
	receive *inventory.ReceivePurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase, receive *inventory.ReceivePurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, receive: receive}
}

// Create crea una compra en borrador.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una compra con sus líneas.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista compras, filtrables por estado.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm pasa la compra de borrador a pendiente.
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive recibe la mercancía: ingresa el stock de todas las líneas y
// recalcula costos promedio en una sola transacción. Recibir una compra ya
// recibida es un no-op.
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	result, err := h.receive.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockTransactionResponse(result))
}

// MarkInvoiced marca la compra como facturada.
func (h *PurchaseHandler) MarkInvoiced(c *fiber.Ctx) error {
	out, err := h.uc.MarkInvoiced(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid marca la compra como pagada.
func (h *PurchaseHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela la compra (solo antes de recibirla).
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
