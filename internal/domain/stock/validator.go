package stock

import (
	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// Precision es la cantidad de decimales a la que se normaliza todo cálculo de stock.
// Round redondea mitades alejándose de cero, que para cantidades no negativas
// equivale a redondeo mitad-arriba.
const Precision = 2

// Decision es el resultado de validar una transición de stock.
// Si Err es nil la transición es válida y Resulting es la cantidad final.
type Decision struct {
	Resulting decimal.Decimal
	Err       error
}

// Normalize redondea una cantidad a la precisión fija del stock.
func Normalize(q decimal.Decimal) decimal.Decimal {
	return q.Round(Precision)
}

// Validate decide si una transición de stock es permitida, sin mutar nada.
// current: cantidad actual (>= 0). magnitude: para OUTBOUND/INBOUND la magnitud
// positiva a restar/sumar; para ADJUSTMENT el valor absoluto objetivo (>= 0).
// Es una función pura: mismos insumos, misma decisión.
func Validate(current, magnitude decimal.Decimal, kind string) Decision {
	current = Normalize(current)
	magnitude = Normalize(magnitude)

	switch kind {
	case entity.MovementKindOutbound:
		if !magnitude.GreaterThan(decimal.Zero) {
			return Decision{Err: domain.ErrInvalidQuantity}
		}
		if magnitude.GreaterThan(current) {
			// Regla dura: nunca se sustituye silenciosamente por una salida parcial.
			return Decision{Err: domain.ErrInsufficientStock}
		}
		return Decision{Resulting: clamp(current.Sub(magnitude))}
	case entity.MovementKindInbound:
		if !magnitude.GreaterThan(decimal.Zero) {
			return Decision{Err: domain.ErrInvalidQuantity}
		}
		return Decision{Resulting: clamp(current.Add(magnitude))}
	case entity.MovementKindAdjustment:
		// Ajustar a cero es válido (conteo físico en vacío); negativo no.
		if magnitude.LessThan(decimal.Zero) {
			return Decision{Err: domain.ErrInvalidQuantity}
		}
		return Decision{Resulting: magnitude}
	}
	return Decision{Err: domain.ErrInvalidInput}
}

// clamp fija el piso en cero. La validación de stock insuficiente hace que un
// resultado negativo sea inalcanzable para OUTBOUND; esto es un invariante
// adicional, no un camino normal.
func clamp(q decimal.Decimal) decimal.Decimal {
	if q.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return Normalize(q)
}
