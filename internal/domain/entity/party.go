package entity

import "time"

// Proveedor es un proveedor del mayorista (fincas, centrales de abasto).
type Proveedor struct {
	ID        string
	TaxID     string // NIT o documento, único
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cliente es un cliente del mayorista (restaurantes, tiendas, plazas).
type Cliente struct {
	ID        string
	TaxID     string // NIT o documento, único
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreditOK  bool // habilitado para comprar a crédito
	CreatedAt time.Time
	UpdatedAt time.Time
}
