package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Kind    string             `json:"kind"`    // COMPRA | VENTA
	PartyID string             `json:"party_id"` // proveedor o cliente según el tipo
	Payment string             `json:"payment,omitempty"` // CONTADO | CREDITO (ventas)
	Items   []OrderItemRequest `json:"items"`
}

// OrderItemRequest renglón de la orden a crear.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderItemResponse renglón en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	Reference   string              `json:"reference"`
	Kind        string              `json:"kind"`
	PartyID     string              `json:"party_id"`
	State       string              `json:"state"`
	Payment     string              `json:"payment,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// CompleteOrderResponse resultado del cierre de una orden.
type CompleteOrderResponse struct {
	Order    OrderResponse `json:"order"`
	Warnings []string      `json:"warnings,omitempty"`
}
