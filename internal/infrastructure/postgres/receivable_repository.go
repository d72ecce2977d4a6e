package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

const receivableColumns = `id, cliente_id, order_id, amount, balance, due_date, state, created_at, updated_at`

// ReceivableRepo implementación de ReceivableRepository sobre PostgreSQL.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

// Create persiste una cuenta por cobrar.
func (r *ReceivableRepo) Create(rec *entity.Receivable) error {
	query := `
		INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ClienteID, rec.OrderID, rec.Amount, rec.Balance, rec.DueDate,
		rec.State, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create receivable: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Devuelve nil si no existe.
func (r *ReceivableRepo) GetByID(id string) (*entity.Receivable, error) {
	return r.getOne(`SELECT `+receivableColumns+` FROM receivables WHERE id = $1`, id)
}

// GetForUpdate obtiene la cuenta bloqueando la fila, para registrar abonos sin
// perder actualizaciones concurrentes del saldo.
func (r *ReceivableRepo) GetForUpdate(id string) (*entity.Receivable, error) {
	return r.getOne(`SELECT `+receivableColumns+` FROM receivables WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReceivableRepo) getOne(query string, arg any) (*entity.Receivable, error) {
	var rec entity.Receivable
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&rec.ID, &rec.ClienteID, &rec.OrderID, &rec.Amount, &rec.Balance, &rec.DueDate,
		&rec.State, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return &rec, nil
}

// Update escribe saldo y estado.
func (r *ReceivableRepo) Update(rec *entity.Receivable) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE receivables SET balance = $2, state = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.Balance, rec.State, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receivable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCliente lista las cuentas de un cliente, más recientes primero.
func (r *ReceivableRepo) ListByCliente(clienteID string, limit, offset int) ([]*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables
		WHERE cliente_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, clienteID, limit, offset)
}

// ListOverdue lista cuentas con saldo vencidas a la fecha dada.
func (r *ReceivableRepo) ListOverdue(asOf time.Time, limit, offset int) ([]*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables
		WHERE state != $4 AND due_date < $1 ORDER BY due_date LIMIT $2 OFFSET $3`
	return r.list(query, asOf, limit, offset, entity.ReceivablePaid)
}

func (r *ReceivableRepo) list(query string, args ...any) ([]*entity.Receivable, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receivable
	for rows.Next() {
		var rec entity.Receivable
		if err := rows.Scan(
			&rec.ID, &rec.ClienteID, &rec.OrderID, &rec.Amount, &rec.Balance, &rec.DueDate,
			&rec.State, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// CreatePayment persiste un abono.
func (r *ReceivableRepo) CreatePayment(p *entity.Payment) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO receivable_payments (id, receivable_id, amount, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.ReceivableID, p.Amount, p.Notes, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// ListPayments lista los abonos de una cuenta en orden cronológico.
func (r *ReceivableRepo) ListPayments(receivableID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, receivable_id, amount, notes, created_by, created_at
		FROM receivable_payments WHERE receivable_id = $1 ORDER BY created_at`, receivableID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.ReceivableID, &p.Amount, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
