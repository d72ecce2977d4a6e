package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/application/usecase"
)

// ReceivableHandler maneja cuentas por cobrar y abonos.
type ReceivableHandler struct {
	uc *usecase.ReceivableUseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(uc *usecase.ReceivableUseCase) *ReceivableHandler {
	return &ReceivableHandler{uc: uc}
}

// RegisterPayment registra un abono contra una cuenta.
func (h *ReceivableHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterPayment(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve una cuenta con su historial de abonos.
func (h *ReceivableHandler) GetByID(c *fiber.Ctx) error {
	rec, payments, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"receivable": rec, "payments": payments})
}

// ListByCliente lista las cuentas de un cliente.
func (h *ReceivableHandler) ListByCliente(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByCliente(c.Params("clienteId"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOverdue lista cuentas vencidas con saldo.
func (h *ReceivableHandler) ListOverdue(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListOverdue(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
