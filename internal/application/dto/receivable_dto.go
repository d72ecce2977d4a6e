package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPaymentRequest body para POST /api/cuentas/:id/pagos.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// ReceivableResponse representación HTTP de una cuenta por cobrar.
type ReceivableResponse struct {
	ID        string          `json:"id"`
	ClienteID string          `json:"cliente_id"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	DueDate   time.Time       `json:"due_date"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResponse un abono registrado.
type PaymentResponse struct {
	ID           string          `json:"id"`
	ReceivableID string          `json:"receivable_id"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}
