package domain

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleAdmin           Role = "admin"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleRestaurantOwner, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// TokenKind differentiates session tokens from password-reset tokens.
// A token of one kind is never accepted where the other is expected.
type TokenKind string

const (
	TokenKindSession       TokenKind = "session"
	TokenKindPasswordReset TokenKind = "password_reset"
)

// ParseTokenKind validates a raw kind string against the closed set.
func ParseTokenKind(raw string) (TokenKind, error) {
	switch TokenKind(raw) {
	case TokenKindSession, TokenKindPasswordReset:
		return TokenKind(raw), nil
	default:
		return "", fmt.Errorf("unknown token kind %q", raw)
	}
}
