package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta por cobrar.
const (
	ReceivablePending = "PENDIENTE"
	ReceivablePartial = "PARCIAL"
	ReceivablePaid    = "PAGADA"
)

// Receivable es una cuenta por cobrar generada al completar una venta a crédito.
type Receivable struct {
	ID        string
	ClienteID string
	OrderID   string
	Amount    decimal.Decimal // monto original de la venta
	Balance   decimal.Decimal // saldo pendiente
	DueDate   time.Time
	State     string // PENDIENTE | PARCIAL | PAGADA
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment es un abono registrado contra una cuenta por cobrar.
type Payment struct {
	ID           string
	ReceivableID string
	Amount       decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}
