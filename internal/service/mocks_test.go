package service_test

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/menu-service/internal/domain"
)

type memoryRestaurantRepo struct {
	mu          sync.Mutex
	restaurants map[string]*domain.Restaurant
}

func newMemoryRestaurantRepo(restaurants ...*domain.Restaurant) *memoryRestaurantRepo {
	repo := &memoryRestaurantRepo{restaurants: make(map[string]*domain.Restaurant)}
	for _, restaurant := range restaurants {
		repo.restaurants[restaurant.ID] = restaurant
	}
	return repo
}

func (r *memoryRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restaurants[restaurant.ID] = restaurant
	return nil
}

func (r *memoryRestaurantRepo) Update(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.restaurants[restaurant.ID] = restaurant
	return nil
}

func (r *memoryRestaurantRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.restaurants[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.restaurants, id)
	return nil
}

func (r *memoryRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *restaurant
	return &copied, nil
}

func (r *memoryRestaurantRepo) List(_ context.Context, openOnly bool, _, _ int) ([]domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurants := make([]domain.Restaurant, 0, len(r.restaurants))
	for _, restaurant := range r.restaurants {
		if openOnly && !restaurant.Open {
			continue
		}
		restaurants = append(restaurants, *restaurant)
	}
	return restaurants, nil
}

func (r *memoryRestaurantRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurants := make([]domain.Restaurant, 0)
	for _, restaurant := range r.restaurants {
		if restaurant.OwnerID == ownerID {
			restaurants = append(restaurants, *restaurant)
		}
	}
	return restaurants, nil
}

type memoryMenuItemRepo struct {
	mu    sync.Mutex
	items map[string]*domain.MenuItem
}

func newMemoryMenuItemRepo(items ...*domain.MenuItem) *memoryMenuItemRepo {
	repo := &memoryMenuItemRepo{items: make(map[string]*domain.MenuItem)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *memoryMenuItemRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memoryMenuItemRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryMenuItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryMenuItemRepo) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *item
	return &copied, nil
}

func (r *memoryMenuItemRepo) ListByRestaurant(_ context.Context, restaurantID string, availableOnly bool) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]domain.MenuItem, 0)
	for _, item := range r.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if availableOnly && !item.Available {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

type memoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMemoryOrderRepo(orders ...*domain.Order) *memoryOrderRepo {
	repo := &memoryOrderRepo{orders: make(map[string]*domain.Order)}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (r *memoryOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *memoryOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (r *memoryOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (r *memoryOrderRepo) ListByCustomer(_ context.Context, customerID string, _, _ int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *memoryOrderRepo) ListByRestaurant(_ context.Context, restaurantID string, _, _ int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.RestaurantID == restaurantID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}
