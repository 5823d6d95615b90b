package domain

import "time"

// MenuItem is a single dish or product on a restaurant's menu.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Category     string
	PriceCents   int64
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
