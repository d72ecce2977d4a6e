package repository

import "github.com/frescosur/mayorista-api/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para proveedores.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	GetByTaxID(taxID string) (*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	List(limit, offset int) ([]*entity.Proveedor, error)
	Delete(id string) error
}

// ClienteRepository define el puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByTaxID(taxID string) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	List(limit, offset int) ([]*entity.Cliente, error)
	Delete(id string) error
}
