package stock

import "github.com/shopspring/decimal"

// Level clasifica el nivel de stock de un producto frente a su umbral mínimo.
type Level string

const (
	LevelOutOfStock   Level = "OUT_OF_STOCK"  // cantidad == 0
	LevelBelowMinimum Level = "BELOW_MINIMUM" // 0 < cantidad < mínimo
	LevelNormal       Level = "NORMAL"        // cantidad >= mínimo
)

// Classify clasifica la cantidad frente al umbral. Función pura, sin efectos;
// la usan el motor de stock (advertencia post-mutación), el dashboard y los jobs.
func Classify(quantity, minimum decimal.Decimal) Level {
	quantity = Normalize(quantity)
	minimum = Normalize(minimum)
	switch {
	case quantity.LessThanOrEqual(decimal.Zero):
		return LevelOutOfStock
	case quantity.LessThan(minimum):
		return LevelBelowMinimum
	}
	return LevelNormal
}

// Warning devuelve el mensaje advisory para un nivel, o vacío si el nivel es normal.
// La advertencia nunca bloquea una mutación.
func Warning(level Level) string {
	switch level {
	case LevelOutOfStock:
		return "producto agotado"
	case LevelBelowMinimum:
		return "stock bajo el mínimo"
	}
	return ""
}
