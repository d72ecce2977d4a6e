package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del mayorista (frutas y verduras).
// QuantityOnHand es la única fuente de verdad del stock actual y solo la modifica
// el motor de stock (application/stock.Engine) vía movimientos; nunca un CRUD directo.
type Product struct {
	ID               string
	SKU              string // código único
	Name             string
	Category         string          // frutas, verduras, tubérculos, etc.
	UnitMeasure      string          // kg, caja, bulto, unidad
	Price            decimal.Decimal // precio de venta por unidad de medida
	Cost             decimal.Decimal // costo de compra por unidad de medida
	QuantityOnHand   decimal.Decimal // stock actual, nunca negativo
	MinimumThreshold decimal.Decimal // por debajo de esto el producto está "bajo mínimo"
	Perishable       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
