package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// RestaurantService coordinates restaurant workflows.
type RestaurantService struct {
	restaurants repository.RestaurantRepository
}

// NewRestaurantService builds the service.
func NewRestaurantService(restaurants repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

// RestaurantInput describes creation/update payloads.
type RestaurantInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Open        bool
}

// Create registers a restaurant owned by the acting user. Admins may create
// on behalf of another owner via ownerID; everyone else owns what they create.
func (s *RestaurantService) Create(ctx context.Context, actor *auth.Identity, ownerID string, input RestaurantInput) (*domain.Restaurant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	if ownerID == "" || actor.Role != domain.RoleAdmin {
		ownerID = actor.ID
	}

	restaurant := &domain.Restaurant{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		Open:        input.Open,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Update modifies a restaurant after the persisted-owner check.
func (s *RestaurantService) Update(ctx context.Context, actor *auth.Identity, id string, input RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	restaurant.Name = input.Name
	restaurant.Description = input.Description
	restaurant.Address = input.Address
	restaurant.Phone = input.Phone
	restaurant.Open = input.Open
	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete removes a restaurant after the persisted-owner check.
func (s *RestaurantService) Delete(ctx context.Context, actor *auth.Identity, id string) error {
	restaurant, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return err
	}
	return s.restaurants.Delete(ctx, id)
}

// Get returns a restaurant. Closed restaurants are visible only to their
// owner and to admins; everyone else sees not found.
func (s *RestaurantService) Get(ctx context.Context, actor *auth.Identity, id string) (*domain.Restaurant, error) {
	restaurant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.Open {
		return restaurant, nil
	}
	if actor != nil && (actor.Role == domain.RoleAdmin || actor.ID == restaurant.OwnerID) {
		return restaurant, nil
	}
	return nil, apperrors.NewNotFound("Restaurant", nil)
}

// List returns open restaurants for anonymous callers and customers;
// admins see everything.
func (s *RestaurantService) List(ctx context.Context, actor *auth.Identity, limit, offset int) ([]domain.Restaurant, error) {
	openOnly := actor == nil || actor.Role != domain.RoleAdmin
	return s.restaurants.List(ctx, openOnly, normalizeLimit(limit), offset)
}

// ListOwn returns the acting owner's restaurants, open or not.
func (s *RestaurantService) ListOwn(ctx context.Context, actor *auth.Identity) ([]domain.Restaurant, error) {
	return s.restaurants.ListByOwner(ctx, actor.ID)
}

func (s *RestaurantService) load(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Restaurant", nil)
		}
		return nil, err
	}
	return restaurant, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
