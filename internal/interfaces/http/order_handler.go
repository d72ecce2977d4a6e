package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/application/orders"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// OrderHandler maneja órdenes de compra y de venta.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create crea una orden en estado PENDIENTE. No afecta stock.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]orders.CreateItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, orders.CreateItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	order, err := h.uc.Create(c.Context(), orders.CreateInput{
		Kind:    in.Kind,
		PartyID: in.PartyID,
		Payment: in.Payment,
		Items:   items,
		UserID:  GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Complete cierra una orden PENDIENTE aplicando sus movimientos de stock.
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	res, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CompleteOrderResponse{
		Order:    toOrderResponse(res.Order),
		Warnings: res.Warnings,
	})
}

// Cancel anula una orden PENDIENTE.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devuelve una orden con sus renglones.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(toOrderResponse(order))
}

// List lista órdenes filtradas por tipo y/o estado.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Query("kind"), c.Query("state"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		Reference:   o.Reference,
		Kind:        o.Kind,
		PartyID:     o.PartyID,
		State:       o.State,
		Payment:     o.Payment,
		Items:       items,
		Total:       o.Total,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
	}
}
