package repository

import (
	"time"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes de compra y venta.
type OrderRepository interface {
	// Create persiste la orden y sus renglones.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus renglones cargados.
	GetByID(id string) (*entity.Order, error)
	List(kind, state string, limit, offset int) ([]*entity.Order, error)
	// MarkCompleted cambia PENDIENTE -> COMPLETADA de forma condicional.
	// Devuelve false si la orden no estaba PENDIENTE (la transición ya ocurrió o
	// fue anulada): garantiza aplicar el cierre a lo sumo una vez.
	MarkCompleted(id, userID string, at time.Time) (bool, error)
	// MarkCancelled cambia PENDIENTE -> ANULADA de forma condicional.
	MarkCancelled(id string) (bool, error)
	// NextReference genera el siguiente consecutivo legible para el tipo (OC-n / OV-n).
	NextReference(kind string) (string, error)
}
