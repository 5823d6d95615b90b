package events

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventOrderCreated           EventType = "order_created"
	EventOrderStatusChanged     EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// PasswordResetRequestedPayload carries the reset token for out-of-band
// delivery. The token is never returned in the HTTP response.
type PasswordResetRequestedPayload struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	TotalCents   int64  `json:"total_cents"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID      string             `json:"order_id"`
	RestaurantID string             `json:"restaurant_id"`
	OldStatus    domain.OrderStatus `json:"old_status"`
	NewStatus    domain.OrderStatus `json:"new_status"`
}
