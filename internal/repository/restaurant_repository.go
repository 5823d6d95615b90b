package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// RestaurantRepository defines persistence access for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	List(ctx context.Context, openOnly bool, limit, offset int) ([]domain.Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository returns a Postgres-backed implementation.
func NewRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &restaurantRepository{pool: pool}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        INSERT INTO restaurants (id, owner_id, name, description, address, phone, open)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		restaurant.ID,
		restaurant.OwnerID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Open,
	).Scan(&restaurant.CreatedAt, &restaurant.UpdatedAt)
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        UPDATE restaurants SET name=$1, description=$2, address=$3, phone=$4, open=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Open,
		restaurant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM restaurants WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	const query = `
        SELECT id, owner_id, name, description, address, phone, open, created_at, updated_at
        FROM restaurants WHERE id=$1`

	var restaurant domain.Restaurant
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.OwnerID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Address,
		&restaurant.Phone,
		&restaurant.Open,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) List(ctx context.Context, openOnly bool, limit, offset int) ([]domain.Restaurant, error) {
	const query = `
        SELECT id, owner_id, name, description, address, phone, open, created_at, updated_at
        FROM restaurants
        WHERE ($1 = false OR open = true)
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, openOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRestaurants(rows)
}

func (r *restaurantRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error) {
	const query = `
        SELECT id, owner_id, name, description, address, phone, open, created_at, updated_at
        FROM restaurants WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRestaurants(rows)
}

func scanRestaurants(rows pgx.Rows) ([]domain.Restaurant, error) {
	restaurants := make([]domain.Restaurant, 0)
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.OwnerID,
			&restaurant.Name,
			&restaurant.Description,
			&restaurant.Address,
			&restaurant.Phone,
			&restaurant.Open,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}
