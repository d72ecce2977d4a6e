package repository

import (
	"time"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// ReceivableRepository define el puerto de persistencia para cuentas por cobrar.
type ReceivableRepository interface {
	Create(r *entity.Receivable) error
	GetByID(id string) (*entity.Receivable, error)
	// GetForUpdate bloquea la fila del receivable (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción que sostenga el lock hasta el commit.
	GetForUpdate(id string) (*entity.Receivable, error)
	Update(r *entity.Receivable) error
	ListByCliente(clienteID string, limit, offset int) ([]*entity.Receivable, error)
	// ListOverdue devuelve cuentas con saldo vencidas a la fecha dada.
	ListOverdue(asOf time.Time, limit, offset int) ([]*entity.Receivable, error)
	CreatePayment(p *entity.Payment) error
	ListPayments(receivableID string) ([]*entity.Payment, error)
}
