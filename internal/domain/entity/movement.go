package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementKindInbound    = "INBOUND"    // entrada: compra completada, devolución
	MovementKindOutbound   = "OUTBOUND"   // salida: venta completada, merma
	MovementKindAdjustment = "ADJUSTMENT" // ajuste a un valor absoluto (conteo físico)
)

// Movement es una entrada del libro de movimientos de stock: append-only,
// se crea una vez y nunca se actualiza ni se borra. QuantityBefore/After son
// fotos del stock en el momento del movimiento, no se recalculan después.
type Movement struct {
	ID             string
	ProductID      string
	Kind           string          // INBOUND | OUTBOUND | ADJUSTMENT
	QuantityDelta  decimal.Decimal // delta con signo realmente aplicado
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Cause          string // referencia de orden, etiquetas de merma, nota manual
	ActorID        string // usuario o proceso que originó el movimiento
	CreatedAt      time.Time
}

// ValidMovementKind indica si kind es uno de los tipos soportados.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindInbound, MovementKindOutbound, MovementKindAdjustment:
		return true
	}
	return false
}
