package service

import (
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// ensureRestaurantAccess is the second phase of the ownership check: the
// ownership middleware only verifies a resource id is addressed, the match
// against the persisted owner happens here, once the resource is loaded.
// Admins bypass.
func ensureRestaurantAccess(actor *auth.Identity, restaurant *domain.Restaurant) error {
	if actor == nil {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if restaurant.OwnerID != actor.ID {
		return apperrors.NewForbidden("You can only access your own resources.")
	}
	return nil
}
