package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos sobre PostgreSQL; items_json es JSONB y se devuelve sin decodificar.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT id, user_id, customer_name, phone, email, address, items_json, total_amount, status, created_at
	FROM orders`

// Create inserta el pedido en una sola sentencia (autocommit) y completa id, total guardado y fecha.
func (r *OrderRepo) Create(ctx context.Context, rec *repository.OrderRecord) error {
	o := &rec.Order
	query := `
		INSERT INTO orders (user_id, customer_name, phone, email, address, items_json, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, total_amount, created_at`
	err := r.q.QueryRow(ctx, query,
		o.UserID, o.CustomerName, o.Phone, o.Email, o.Address, rec.ItemsJSON, o.TotalAmount, o.Status,
	).Scan(&o.ID, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el usuario indicado no existe")
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido. nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*repository.OrderRecord, error) {
	rec, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return rec, nil
}

// List lista todos los pedidos, más reciente primero.
func (r *OrderRepo) List(ctx context.Context) ([]*repository.OrderRecord, error) {
	rows, err := r.q.Query(ctx, orderSelect+` ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*repository.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*repository.OrderRecord, error) {
	var rec repository.OrderRecord
	o := &rec.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.Phone, &o.Email, &o.Address,
		&rec.ItemsJSON, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
