package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements (movimiento manual).
// Para INBOUND/OUTBOUND magnitude es la magnitud positiva; para ADJUSTMENT el
// valor absoluto objetivo.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id"`
	Kind      string          `json:"kind"` // INBOUND | OUTBOUND | ADJUSTMENT
	Magnitude decimal.Decimal `json:"magnitude"`
	Cause     string          `json:"cause"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Kind           string          `json:"kind"`
	QuantityDelta  decimal.Decimal `json:"quantity_delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Cause          string          `json:"cause"`
	ActorID        string          `json:"actor_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementResultResponse resultado de aplicar un movimiento: nuevo estado del
// producto, el movimiento creado y la advertencia de umbral si la hay.
type MovementResultResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	Warning  string           `json:"warning,omitempty"`
}
