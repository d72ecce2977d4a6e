package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create crea un proveedor. NIT duplicado devuelve ErrDuplicate.
func (uc *ProveedorUseCase) Create(in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.TaxID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Proveedor{
		ID:        uuid.New().String(),
		TaxID:     in.TaxID,
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return proveedorResponse(p), nil
}

// GetByID obtiene un proveedor.
func (uc *ProveedorUseCase) GetByID(id string) (*dto.PartyResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return proveedorResponse(p), nil
}

// Update actualiza campos de contacto.
func (uc *ProveedorUseCase) Update(id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Contact != nil {
		p.Contact = *in.Contact
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return proveedorResponse(p), nil
}

// List lista proveedores con paginación.
func (uc *ProveedorUseCase) List(limit, offset int) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *proveedorResponse(p))
	}
	return out, nil
}

// Delete elimina un proveedor.
func (uc *ProveedorUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func proveedorResponse(p *entity.Proveedor) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        p.ID,
		TaxID:     p.TaxID,
		Name:      p.Name,
		Contact:   p.Contact,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}

// ClienteUseCase casos de uso CRUD para clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create crea un cliente. NIT duplicado devuelve ErrDuplicate.
func (uc *ClienteUseCase) Create(in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.TaxID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		TaxID:     in.TaxID,
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreditOK:  in.CreditOK,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return clienteResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClienteUseCase) GetByID(id string) (*dto.PartyResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return clienteResponse(c), nil
}

// Update actualiza campos de contacto y el cupo de crédito.
func (uc *ClienteUseCase) Update(id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Contact != nil {
		c.Contact = *in.Contact
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.CreditOK != nil {
		c.CreditOK = *in.CreditOK
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return clienteResponse(c), nil
}

// List lista clientes con paginación.
func (uc *ClienteUseCase) List(limit, offset int) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *clienteResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente.
func (uc *ClienteUseCase) Delete(id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func clienteResponse(c *entity.Cliente) *dto.PartyResponse {
	credit := c.CreditOK
	return &dto.PartyResponse{
		ID:        c.ID,
		TaxID:     c.TaxID,
		Name:      c.Name,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreditOK:  &credit,
		CreatedAt: c.CreatedAt,
	}
}
