package domain

import "time"

// User is the domain model for platform accounts: customers,
// restaurant owners and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
