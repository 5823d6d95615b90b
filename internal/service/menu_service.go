package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/config"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/persistence"
	"github.com/spec-kit/menu-service/internal/repository"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// MenuService coordinates menu item workflows. Public menus are cached in
// Redis with a short TTL; writes invalidate the restaurant's cache entry.
type MenuService struct {
	items       repository.MenuItemRepository
	restaurants repository.RestaurantRepository
	cache       *persistence.Redis
	logger      *zap.Logger
}

// MenuDependencies bundles requirements for the menu service.
type MenuDependencies struct {
	MenuItemRepo   repository.MenuItemRepository
	RestaurantRepo repository.RestaurantRepository
	Cache          *persistence.Redis
	Logger         *zap.Logger
}

// NewMenuService builds the service.
func NewMenuService(deps MenuDependencies) *MenuService {
	return &MenuService{
		items:       deps.MenuItemRepo,
		restaurants: deps.RestaurantRepo,
		cache:       deps.Cache,
		logger:      deps.Logger,
	}
}

// MenuItemInput describes creation/update payloads.
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Available   bool
}

// AddItem creates a menu item under the restaurant after the
// persisted-owner check.
func (s *MenuService) AddItem(ctx context.Context, actor *auth.Identity, restaurantID string, input MenuItemInput) (*domain.MenuItem, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return nil, err
	}
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		PriceCents:   input.PriceCents,
		Available:    input.Available,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx, restaurantID)
	return item, nil
}

// UpdateItem modifies a menu item after the persisted-owner check.
func (s *MenuService) UpdateItem(ctx context.Context, actor *auth.Identity, restaurantID, itemID string, input MenuItemInput) (*domain.MenuItem, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, apperrors.NewNotFound("Menu item", nil)
	}
	if err := validateMenuItemInput(input); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Category = input.Category
	item.PriceCents = input.PriceCents
	item.Available = input.Available
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx, restaurantID)
	return item, nil
}

// RemoveItem deletes a menu item after the persisted-owner check.
func (s *MenuService) RemoveItem(ctx context.Context, actor *auth.Identity, restaurantID, itemID string) error {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.RestaurantID != restaurantID {
		return apperrors.NewNotFound("Menu item", nil)
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.invalidateMenu(ctx, restaurantID)
	return nil
}

// GetMenu returns the public menu (available items only), served from the
// Redis cache when possible. Only menu payloads are cached here, never
// identity or account state.
func (s *MenuService) GetMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	key := menuCacheKey(restaurantID)

	if s.cache != nil && s.cache.Client != nil {
		if raw, err := s.cache.Client.Get(ctx, key).Bytes(); err == nil {
			var items []domain.MenuItem
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
	}

	if _, err := s.loadRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.Client != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Client.Set(ctx, key, raw, config.MenuCacheTTL).Err(); err != nil {
				s.logger.Debug("menu cache set failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

// ListAll returns every item for a restaurant, including unavailable ones,
// for the owner's management view.
func (s *MenuService) ListAll(ctx context.Context, actor *auth.Identity, restaurantID string) ([]domain.MenuItem, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return nil, err
	}
	return s.items.ListByRestaurant(ctx, restaurantID, false)
}

func (s *MenuService) invalidateMenu(ctx context.Context, restaurantID string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, menuCacheKey(restaurantID)).Err(); err != nil {
		s.logger.Debug("menu cache invalidation failed", zap.Error(err))
	}
}

func (s *MenuService) loadRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Restaurant", nil)
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *MenuService) loadItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Menu item", nil)
		}
		return nil, err
	}
	return item, nil
}

func validateMenuItemInput(input MenuItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if input.PriceCents < 0 {
		return apperrors.NewValidationError("price_cents must not be negative", nil)
	}
	return nil
}

func menuCacheKey(restaurantID string) string {
	return "menu:" + restaurantID
}
