package repository

import (
	"time"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// MermaRepository define el puerto de persistencia para registros de merma.
type MermaRepository interface {
	Create(merma *entity.Merma) error
	GetByID(id string) (*entity.Merma, error)
	// List filtra por producto y/o clasificación (vacíos = todos), ordenado por fecha desc.
	List(productID, clasificacion string, from, to *time.Time, limit, offset int) ([]*entity.Merma, error)
}
