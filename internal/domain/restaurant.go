package domain

import "time"

// Restaurant is a tenant on the platform, owned by a restaurant_owner account.
type Restaurant struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Address     string
	Phone       string
	Open        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
