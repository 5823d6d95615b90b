package dto

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// RestaurantRequest payload for creating/updating a restaurant.
type RestaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Open        bool   `json:"open"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// RestaurantResponse is the public projection of a restaurant.
type RestaurantResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRestaurantResponse maps a domain restaurant.
func NewRestaurantResponse(restaurant *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:          restaurant.ID,
		OwnerID:     restaurant.OwnerID,
		Name:        restaurant.Name,
		Description: restaurant.Description,
		Address:     restaurant.Address,
		Phone:       restaurant.Phone,
		Open:        restaurant.Open,
		CreatedAt:   restaurant.CreatedAt,
	}
}
