package dto

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// OrderLineRequest is one requested order line.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest payload for placing an order.
type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurant_id"`
	Items        []OrderLineRequest `json:"items"`
	Note         string             `json:"note"`
}

// OrderStatusRequest payload for advancing an order.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is one snapshotted order line.
type OrderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// OrderResponse is the public projection of an order.
type OrderResponse struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurant_id"`
	CustomerID   string              `json:"customer_id"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	TotalCents   int64               `json:"total_cents"`
	Note         string              `json:"note,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}
	return OrderResponse{
		ID:           order.ID,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		Status:       string(order.Status),
		Items:        items,
		TotalCents:   order.TotalCents,
		Note:         order.Note,
		CreatedAt:    order.CreatedAt,
	}
}
