package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de la merma.
const (
	MermaNormal        = "NORMAL"        // pérdida esperada de la operación (maduración, manipulación)
	MermaExtraordinary = "EXTRAORDINARIA" // pérdida fuera de lo normal (accidente, robo, plaga)
)

// Tipos de causa de merma (taxonomía tipo + causa específica).
const (
	MermaTipoDeterioro   = "DETERIORO"
	MermaTipoManipuleo   = "MANIPULEO"
	MermaTipoTransporte  = "TRANSPORTE"
	MermaTipoVencimiento = "VENCIMIENTO"
	MermaTipoOtro        = "OTRO"
)

// Merma registra una pérdida de producto. Referencia el Movement OUTBOUND que
// descontó el stock: solo existe si ese movimiento se aplicó con éxito.
type Merma struct {
	ID            string
	ProductID     string
	MovementID    string // movimiento del libro que produjo esta merma
	Tipo          string // taxonomía: DETERIORO, MANIPULEO, TRANSPORTE, VENCIMIENTO, OTRO
	Causa         string // sub-causa libre dentro del tipo
	Clasificacion string // NORMAL | EXTRAORDINARIA
	Quantity      decimal.Decimal
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidMermaTipo indica si tipo pertenece a la taxonomía.
func ValidMermaTipo(tipo string) bool {
	switch tipo {
	case MermaTipoDeterioro, MermaTipoManipuleo, MermaTipoTransporte, MermaTipoVencimiento, MermaTipoOtro:
		return true
	}
	return false
}
