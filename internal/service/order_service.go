package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/events"
	"github.com/spec-kit/menu-service/internal/repository"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// OrderService coordinates order workflows.
type OrderService struct {
	orders      repository.OrderRepository
	items       repository.MenuItemRepository
	restaurants repository.RestaurantRepository
	dispatcher  events.Dispatcher
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo      repository.OrderRepository
	MenuItemRepo   repository.MenuItemRepository
	RestaurantRepo repository.RestaurantRepository
	Dispatcher     events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:      deps.OrderRepo,
		items:       deps.MenuItemRepo,
		restaurants: deps.RestaurantRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// OrderLineInput is one requested line of an order.
type OrderLineInput struct {
	MenuItemID string
	Quantity   int
}

// OrderCreateInput describes an order placement payload.
type OrderCreateInput struct {
	RestaurantID string
	Lines        []OrderLineInput
	Note         string
}

// PlaceOrder creates an order for the acting customer. Item names and
// prices are snapshotted so later menu edits never change a placed order.
func (s *OrderService) PlaceOrder(ctx context.Context, actor *auth.Identity, input OrderCreateInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, apperrors.NewValidationError("at least one item required", nil)
	}

	restaurant, err := s.restaurants.GetByID(ctx, input.RestaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Restaurant", nil)
		}
		return nil, err
	}
	if !restaurant.Open {
		return nil, apperrors.NewBadRequest("Restaurant is not accepting orders")
	}

	orderItems := make([]domain.OrderItem, 0, len(input.Lines))
	var total int64
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("quantity must be positive", nil)
		}
		item, err := s.items.GetByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("Menu item", nil)
			}
			return nil, err
		}
		if item.RestaurantID != input.RestaurantID || !item.Available {
			return nil, apperrors.NewValidationError("item not available from this restaurant", map[string]any{"menu_item_id": line.MenuItemID})
		}
		orderItems = append(orderItems, domain.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   line.Quantity,
		})
		total += item.PriceCents * int64(line.Quantity)
	}

	order := &domain.Order{
		ID:           uuid.NewString(),
		RestaurantID: input.RestaurantID,
		CustomerID:   actor.ID,
		Status:       domain.OrderStatusPending,
		Items:        orderItems,
		TotalCents:   total,
		Note:         input.Note,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderCreated, actor.ID, events.OrderCreatedPayload{
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		TotalCents:   order.TotalCents,
	})
	return order, nil
}

// Get returns an order visible to the actor: the ordering customer, the
// restaurant's owner, or an admin.
func (s *OrderService) Get(ctx context.Context, actor *auth.Identity, id string) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOrderAccess(ctx, actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOwn returns the acting customer's orders.
func (s *OrderService) ListOwn(ctx context.Context, actor *auth.Identity, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, actor.ID, normalizeLimit(limit), offset)
}

// ListForRestaurant returns a restaurant's orders after the persisted-owner
// check.
func (s *OrderService) ListForRestaurant(ctx context.Context, actor *auth.Identity, restaurantID string, limit, offset int) ([]domain.Order, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Restaurant", nil)
		}
		return nil, err
	}
	if err := ensureRestaurantAccess(actor, restaurant); err != nil {
		return nil, err
	}
	return s.orders.ListByRestaurant(ctx, restaurantID, normalizeLimit(limit), offset)
}

// UpdateStatus advances the order lifecycle. Owners and admins may apply
// any valid transition; the ordering customer may only cancel while the
// order is still pending.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *auth.Identity, id string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleCustomer {
		if order.CustomerID != actor.ID {
			return nil, apperrors.NewForbidden("You can only access your own resources.")
		}
		if next != domain.OrderStatusCancelled || order.Status != domain.OrderStatusPending {
			return nil, apperrors.NewForbidden("Access denied. Insufficient permissions.")
		}
	} else if err := s.ensureOrderAccess(ctx, actor, order); err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.NewBadRequest("Invalid status transition")
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderStatusChanged, actor.ID, events.OrderStatusChangedPayload{
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		OldStatus:    order.Status,
		NewStatus:    next,
	})

	order.Status = next
	return order, nil
}

func (s *OrderService) ensureOrderAccess(ctx context.Context, actor *auth.Identity, order *domain.Order) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if order.CustomerID != actor.ID {
			return apperrors.NewForbidden("You can only access your own resources.")
		}
		return nil
	case domain.RoleRestaurantOwner:
		restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("Restaurant", nil)
			}
			return err
		}
		return ensureRestaurantAccess(actor, restaurant)
	default:
		return apperrors.NewForbidden("Access denied. Insufficient permissions.")
	}
}

func (s *OrderService) load(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Order", nil)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
