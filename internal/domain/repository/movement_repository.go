package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para consultar el libro de movimientos.
type MovementFilter struct {
	ProductID string
	Kind      string // INBOUND | OUTBOUND | ADJUSTMENT, vacío = todos
	Cause     string // match exacto sobre la causa, vacío = todas
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: solo Create y lecturas, nunca update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados por CreatedAt descendente.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// SumDeltas suma los deltas con signo de un producto en una ventana de tiempo.
	// Lo usa la conciliación para verificar conservación del stock contra el libro.
	SumDeltas(productID string, from, to *time.Time) (decimal.Decimal, error)
}
