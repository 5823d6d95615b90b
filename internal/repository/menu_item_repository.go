package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// MenuItemRepository defines persistence access for menu items.
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID string, availableOnly bool) ([]domain.MenuItem, error)
}

type menuItemRepository struct {
	pool *pgxpool.Pool
}

// NewMenuItemRepository returns a Postgres-backed implementation.
func NewMenuItemRepository(pool *pgxpool.Pool) MenuItemRepository {
	return &menuItemRepository{pool: pool}
}

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (id, restaurant_id, name, description, category, price_cents, available)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Category,
		item.PriceCents,
		item.Available,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items SET name=$1, description=$2, category=$3, price_cents=$4, available=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Category,
		item.PriceCents,
		item.Available,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM menu_items WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	const query = `
        SELECT id, restaurant_id, name, description, category, price_cents, available, created_at, updated_at
        FROM menu_items WHERE id=$1`

	var item domain.MenuItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.PriceCents,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) ListByRestaurant(ctx context.Context, restaurantID string, availableOnly bool) ([]domain.MenuItem, error) {
	const query = `
        SELECT id, restaurant_id, name, description, category, price_cents, available, created_at, updated_at
        FROM menu_items
        WHERE restaurant_id=$1 AND ($2 = false OR available = true)
        ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query, restaurantID, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.PriceCents,
			&item.Available,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
