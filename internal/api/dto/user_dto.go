package dto

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStatusRequest toggles an account's active flag.
type UserStatusRequest struct {
	Active *bool `json:"active"`
}

// NewUserResponse maps a domain user, dropping the credential hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
