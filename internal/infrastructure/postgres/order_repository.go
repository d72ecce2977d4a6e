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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, reference, kind, party_id, state, payment, total,
		completed_at, completed_by, created_at, created_by`

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y sus renglones.
func (r *OrderRepo) Create(o *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	completedBy := (*string)(nil)
	if o.CompletedBy != "" {
		completedBy = &o.CompletedBy
	}
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Reference, o.Kind, o.PartyID, o.State, o.Payment, o.Total,
		o.CompletedAt, completedBy, o.CreatedAt, o.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus renglones. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// List lista órdenes filtradas por tipo y/o estado, sin renglones.
func (r *OrderRepo) List(kind, state string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []any
	pos := 1
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, kind)
		pos++
	}
	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", pos)
		args = append(args, state)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// MarkCompleted cambia PENDIENTE -> COMPLETADA condicionalmente. El WHERE sobre
// el estado garantiza que la transición se aplique a lo sumo una vez aunque dos
// cierres compitan por la misma orden.
func (r *OrderRepo) MarkCompleted(id, userID string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE orders SET state = $2, completed_at = $3, completed_by = $4
		WHERE id = $1 AND state = $5`,
		id, entity.OrderStateCompleted, at, userID, entity.OrderStatePending,
	)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCancelled cambia PENDIENTE -> ANULADA condicionalmente.
func (r *OrderRepo) MarkCancelled(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE orders SET state = $2 WHERE id = $1 AND state = $3`,
		id, entity.OrderStateCancelled, entity.OrderStatePending,
	)
	if err != nil {
		return false, fmt.Errorf("mark cancelled: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// NextReference genera el siguiente consecutivo legible (OC-n para compras,
// OV-n para ventas) a partir de una secuencia por tipo.
func (r *OrderRepo) NextReference(kind string) (string, error) {
	seq := "order_seq_purchase"
	prefix := "OC"
	if kind == entity.OrderKindSale {
		seq = "order_seq_sale"
		prefix = "OV"
	}
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT nextval($1)`, seq).Scan(&n); err != nil {
		return "", fmt.Errorf("next reference: %w", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, n), nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var completedBy *string
	err := row.Scan(
		&o.ID, &o.Reference, &o.Kind, &o.PartyID, &o.State, &o.Payment, &o.Total,
		&o.CompletedAt, &completedBy, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if completedBy != nil {
		o.CompletedBy = *completedBy
	}
	return &o, nil
}
