package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/menu-service/internal/domain"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"customer", "restaurant_owner", "admin"} {
		role, err := domain.ParseRole(raw)
		assert.NoError(t, err)
		assert.Equal(t, domain.Role(raw), role)
	}

	for _, raw := range []string{"", "ADMIN", "staff", "owner"} {
		_, err := domain.ParseRole(raw)
		assert.Error(t, err, "role %q", raw)
	}
}

func TestParseTokenKind(t *testing.T) {
	for _, raw := range []string{"session", "password_reset"} {
		kind, err := domain.ParseTokenKind(raw)
		assert.NoError(t, err)
		assert.Equal(t, domain.TokenKind(raw), kind)
	}

	for _, raw := range []string{"", "refresh", "SESSION"} {
		_, err := domain.ParseTokenKind(raw)
		assert.Error(t, err, "kind %q", raw)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, domain.OrderStatusPending.CanTransitionTo(domain.OrderStatusConfirmed))
	assert.True(t, domain.OrderStatusPending.CanTransitionTo(domain.OrderStatusCancelled))
	assert.True(t, domain.OrderStatusConfirmed.CanTransitionTo(domain.OrderStatusPreparing))
	assert.True(t, domain.OrderStatusPreparing.CanTransitionTo(domain.OrderStatusReady))
	assert.True(t, domain.OrderStatusReady.CanTransitionTo(domain.OrderStatusDelivered))

	assert.False(t, domain.OrderStatusPending.CanTransitionTo(domain.OrderStatusDelivered))
	assert.False(t, domain.OrderStatusDelivered.CanTransitionTo(domain.OrderStatusPending))
	assert.False(t, domain.OrderStatusCancelled.CanTransitionTo(domain.OrderStatusConfirmed))
}
