package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/domain"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// RequireRoles permits the request only when the authenticated identity's
// role is in the allow-list. Pure predicate, no I/O.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("Access denied. Insufficient permissions.")
		}
		return c.Next()
	}
}

// RequireOwnership narrows access by role and the route parameter named by
// param. Admins bypass every ownership check. Restaurant owners must address
// a concrete resource id; the final match against the persisted owner is
// done by the handler's service call, which still sees the resource itself.
// Customers may only address their own user id.
func RequireOwnership(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}

		switch identity.Role {
		case domain.RoleAdmin:
			return c.Next()
		case domain.RoleRestaurantOwner:
			if c.Params(param) == "" {
				return apperrors.NewBadRequest("Resource ID required")
			}
			return c.Next()
		case domain.RoleCustomer:
			if target := c.Params(param); target != "" && target != identity.ID {
				return apperrors.NewForbidden("You can only access your own resources.")
			}
			return c.Next()
		default:
			return c.Next()
		}
	}
}
