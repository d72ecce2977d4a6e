package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMermaRequest body para POST /api/mermas.
type RegisterMermaRequest struct {
	ProductID     string          `json:"product_id"`
	Tipo          string          `json:"tipo"`          // DETERIORO, MANIPULEO, TRANSPORTE, VENCIMIENTO, OTRO
	Causa         string          `json:"causa"`         // sub-causa dentro del tipo
	Clasificacion string          `json:"clasificacion"` // NORMAL | EXTRAORDINARIA
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
}

// MermaResponse representación HTTP de una merma registrada.
type MermaResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	MovementID    string          `json:"movement_id"`
	Tipo          string          `json:"tipo"`
	Causa         string          `json:"causa"`
	Clasificacion string          `json:"clasificacion"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	Warning       string          `json:"warning,omitempty"`
}
