package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// UpdateQuantity solo debe invocarse desde el motor de stock, dentro de una
// transacción que sostenga el lock de GetForUpdate sobre la misma fila.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para serializar
	// las secuencias leer-validar-escribir concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
}
