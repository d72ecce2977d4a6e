package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderKindPurchase = "COMPRA" // a un proveedor, completa con entradas de stock
	OrderKindSale     = "VENTA"  // a un cliente, completa con salidas de stock
)

// Estados de una orden. Solo PENDIENTE admite transición (a COMPLETADA o ANULADA);
// los otros dos son terminales.
const (
	OrderStatePending   = "PENDIENTE"
	OrderStateCompleted = "COMPLETADA"
	OrderStateCancelled = "ANULADA"
)

// Formas de pago de una venta.
const (
	PaymentCash   = "CONTADO"
	PaymentCredit = "CREDITO" // genera cuenta por cobrar al completar
)

// Order es una orden de compra o venta con sus renglones.
// PartyID referencia al proveedor (COMPRA) o al cliente (VENTA).
type Order struct {
	ID          string
	Reference   string // consecutivo legible: OC-0001, OV-0001
	Kind        string // COMPRA | VENTA
	PartyID     string
	State       string // PENDIENTE | COMPLETADA | ANULADA
	Payment     string // CONTADO | CREDITO (solo ventas)
	Items       []OrderItem
	Total       decimal.Decimal
	CompletedAt *time.Time
	CompletedBy string
	CreatedAt   time.Time
	CreatedBy   string
}

// OrderItem es un renglón de la orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal // siempre positiva
	UnitPrice decimal.Decimal // costo unitario en compras, precio en ventas
	Subtotal  decimal.Decimal
}
