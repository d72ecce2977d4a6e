package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

var _ repository.MermaRepository = (*MermaRepo)(nil)

const mermaColumns = `id, product_id, movement_id, tipo, causa, clasificacion,
		quantity, notes, created_by, created_at`

// MermaRepo implementación de MermaRepository sobre PostgreSQL.
type MermaRepo struct {
	q Querier
}

// NewMermaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMermaRepository(q Querier) *MermaRepo {
	return &MermaRepo{q: q}
}

// Create persiste un registro de merma.
func (r *MermaRepo) Create(m *entity.Merma) error {
	query := `
		INSERT INTO mermas (` + mermaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.MovementID, m.Tipo, m.Causa, m.Clasificacion,
		m.Quantity, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create merma: %w", err)
	}
	return nil
}

// GetByID obtiene una merma por ID. Devuelve nil si no existe.
func (r *MermaRepo) GetByID(id string) (*entity.Merma, error) {
	query := `SELECT ` + mermaColumns + ` FROM mermas WHERE id = $1`
	var m entity.Merma
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.MovementID, &m.Tipo, &m.Causa, &m.Clasificacion,
		&m.Quantity, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merma: %w", err)
	}
	return &m, nil
}

// List filtra por producto y/o clasificación en un rango de fechas.
func (r *MermaRepo) List(productID, clasificacion string, from, to *time.Time, limit, offset int) ([]*entity.Merma, error) {
	query := `SELECT ` + mermaColumns + ` FROM mermas WHERE 1=1`
	var args []any
	pos := 1
	add := func(cond string, v any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, v)
		pos++
	}
	if productID != "" {
		add("product_id = $%d", productID)
	}
	if clasificacion != "" {
		add("clasificacion = $%d", clasificacion)
	}
	if from != nil {
		add("created_at >= $%d", *from)
	}
	if to != nil {
		add("created_at <= $%d", *to)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mermas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Merma
	for rows.Next() {
		var m entity.Merma
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.MovementID, &m.Tipo, &m.Causa, &m.Clasificacion,
			&m.Quantity, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan merma: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
