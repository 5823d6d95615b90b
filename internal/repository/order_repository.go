package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// OrderRepository defines persistence access for orders. Line items are
// stored as a jsonb snapshot alongside the order row.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (id, restaurant_id, customer_id, status, items, total_cents, note)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.ID,
		order.RestaurantID,
		order.CustomerID,
		order.Status,
		order.Items,
		order.TotalCents,
		order.Note,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `
        UPDATE orders SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, restaurant_id, customer_id, status, items, total_cents, note, created_at, updated_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.RestaurantID,
		&order.CustomerID,
		&order.Status,
		&order.Items,
		&order.TotalCents,
		&order.Note,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, restaurant_id, customer_id, status, items, total_cents, note, created_at, updated_at
        FROM orders WHERE customer_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, restaurant_id, customer_id, status, items, total_cents, note, created_at, updated_at
        FROM orders WHERE restaurant_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.RestaurantID,
			&order.CustomerID,
			&order.Status,
			&order.Items,
			&order.TotalCents,
			&order.Note,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
