package dto

import "time"

// CreatePartyRequest body para crear proveedor o cliente.
type CreatePartyRequest struct {
	TaxID    string `json:"tax_id"`
	Name     string `json:"name"`
	Contact  string `json:"contact,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	CreditOK bool   `json:"credit_ok,omitempty"` // solo clientes
}

// UpdatePartyRequest campos opcionales para actualizar proveedor o cliente.
type UpdatePartyRequest struct {
	Name     *string `json:"name,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	CreditOK *bool   `json:"credit_ok,omitempty"`
}

// PartyResponse representación HTTP de un proveedor o cliente.
type PartyResponse struct {
	ID        string    `json:"id"`
	TaxID     string    `json:"tax_id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreditOK  *bool     `json:"credit_ok,omitempty"` // solo clientes
	CreatedAt time.Time `json:"created_at"`
}
