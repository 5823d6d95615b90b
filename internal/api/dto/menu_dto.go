package dto

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// MenuItemRequest payload for creating/updating a menu item.
type MenuItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	Available   bool   `json:"available"`
}

// MenuItemResponse is the public projection of a menu item.
type MenuItemResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	PriceCents   int64     `json:"price_cents"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMenuItemResponse maps a domain menu item.
func NewMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Category:     item.Category,
		PriceCents:   item.PriceCents,
		Available:    item.Available,
		CreatedAt:    item.CreatedAt,
	}
}
