package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// UserService handles account lookups and admin account management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a user profile. Non-admins may only fetch their own.
func (s *UserService) Get(ctx context.Context, actor *auth.Identity, id string) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return nil, apperrors.NewForbidden("You can only access your own resources.")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// List returns accounts for the admin console.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, normalizeLimit(limit), offset)
}

// SetActive activates or deactivates an account. Deactivation takes effect
// on the target's very next request since identity is re-resolved each time.
func (s *UserService) SetActive(ctx context.Context, actor *auth.Identity, id string, active bool) error {
	if actor.ID == id {
		return apperrors.NewBadRequest("You cannot change your own account status")
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}
	return nil
}
