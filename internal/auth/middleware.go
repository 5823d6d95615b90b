package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the per-request projection of a freshly resolved account.
// It is built once per request by the middleware and discarded at request
// end; it is never persisted or cached across requests.
type Identity struct {
	ID    string
	Role  domain.Role
	Email string
}

// Middleware validates bearer tokens and resolves identities. It is the
// unique point of trust: a token alone never authorizes a request, the
// account is re-resolved from the store every time so deactivation takes
// effect immediately.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional runs the same pipeline but never fails the request: a missing,
// invalid or expired token, a lookup failure or a deactivated account all
// proceed with no identity attached.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if identity, err := m.resolve(c); err == nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) (*Identity, error) {
	// Exact scheme: "Bearer" case-sensitive, single space separator.
	header := c.Get(fiber.HeaderAuthorization)
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return nil, apperrors.NewUnauthorized("No token provided")
	}

	claims, err := m.tokens.Parse(tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, apperrors.NewUnauthorized("Token expired")
		}
		return nil, apperrors.NewUnauthorized("Invalid token")
	}
	if claims.Kind != domain.TokenKindSession {
		return nil, apperrors.NewUnauthorized("Invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("Account is deactivated")
	}

	return &Identity{ID: user.ID, Role: user.Role, Email: user.Email}, nil
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
