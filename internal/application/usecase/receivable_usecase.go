package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
	"github.com/frescosur/mayorista-api/internal/domain/stock"
)

// ReceivableTxRunner ejecuta el registro de un abono en una transacción: el
// descuento del saldo y el registro del abono se confirman juntos o ninguno,
// con el lock de fila de GetForUpdate vigente durante toda la secuencia.
type ReceivableTxRunner interface {
	RunReceivables(ctx context.Context, fn func(repo repository.ReceivableRepository) error) error
}

// ReceivableUseCase maneja cuentas por cobrar: abonos y consultas.
// Las cuentas se crean al completar una venta a crédito (orders.UseCase).
type ReceivableUseCase struct {
	txRunner ReceivableTxRunner
	repo     repository.ReceivableRepository // lecturas fuera de transacción
}

// NewReceivableUseCase construye el caso de uso.
func NewReceivableUseCase(txRunner ReceivableTxRunner, repo repository.ReceivableRepository) *ReceivableUseCase {
	return &ReceivableUseCase{txRunner: txRunner, repo: repo}
}

// RegisterPayment registra un abono: monto positivo, no mayor al saldo.
// Actualiza saldo y estado (PARCIAL o PAGADA). Corre en una transacción con la
// fila bloqueada: dos abonos concurrentes contra la misma cuenta se serializan
// y el segundo valida contra el saldo ya descontado.
func (uc *ReceivableUseCase) RegisterPayment(ctx context.Context, receivableID, userID string, in dto.RegisterPaymentRequest) (*dto.ReceivableResponse, error) {
	amount := stock.Normalize(in.Amount)
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ReceivableResponse
	err := uc.txRunner.RunReceivables(ctx, func(repo repository.ReceivableRepository) error {
		rec, err := repo.GetForUpdate(receivableID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.State == entity.ReceivablePaid {
			return domain.ErrConflict
		}
		if amount.GreaterThan(rec.Balance) {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		rec.Balance = rec.Balance.Sub(amount)
		if rec.Balance.IsZero() {
			rec.State = entity.ReceivablePaid
		} else {
			rec.State = entity.ReceivablePartial
		}
		rec.UpdatedAt = now
		if err := repo.Update(rec); err != nil {
			return err
		}
		payment := &entity.Payment{
			ID:           uuid.New().String(),
			ReceivableID: rec.ID,
			Amount:       amount,
			Notes:        in.Notes,
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		if err := repo.CreatePayment(payment); err != nil {
			return err
		}
		out = toReceivableResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve una cuenta con sus abonos.
func (uc *ReceivableUseCase) GetByID(id string) (*dto.ReceivableResponse, []dto.PaymentResponse, error) {
	rec, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, domain.ErrNotFound
	}
	payments, err := uc.repo.ListPayments(id)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentResponse{
			ID:           p.ID,
			ReceivableID: p.ReceivableID,
			Amount:       p.Amount,
			Notes:        p.Notes,
			CreatedBy:    p.CreatedBy,
			CreatedAt:    p.CreatedAt,
		})
	}
	return toReceivableResponse(rec), out, nil
}

// ListByCliente lista las cuentas de un cliente.
func (uc *ReceivableUseCase) ListByCliente(clienteID string, limit, offset int) ([]dto.ReceivableResponse, error) {
	list, err := uc.repo.ListByCliente(clienteID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toReceivableResponses(list), nil
}

// ListOverdue lista cuentas vencidas con saldo.
func (uc *ReceivableUseCase) ListOverdue(limit, offset int) ([]dto.ReceivableResponse, error) {
	list, err := uc.repo.ListOverdue(time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}
	return toReceivableResponses(list), nil
}

func toReceivableResponses(list []*entity.Receivable) []dto.ReceivableResponse {
	out := make([]dto.ReceivableResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReceivableResponse(r))
	}
	return out
}

func toReceivableResponse(r *entity.Receivable) *dto.ReceivableResponse {
	return &dto.ReceivableResponse{
		ID:        r.ID,
		ClienteID: r.ClienteID,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		Balance:   r.Balance,
		DueDate:   r.DueDate,
		State:     r.State,
		CreatedAt: r.CreatedAt,
	}
}
