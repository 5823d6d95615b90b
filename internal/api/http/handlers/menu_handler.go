package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/dto"
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/service"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// MenuHandler manages menu endpoints under a restaurant.
type MenuHandler struct {
	service *service.MenuService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{service: menuService}
}

// GetMenu GET /restaurants/:id/menu. Public; served via the Redis cache.
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	items, err := h.service.GetMenu(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": menuItemResponses(items)})
}

// ListAll GET /restaurants/:id/menu-items. Owner management view,
// includes unavailable items.
func (h *MenuHandler) ListAll(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	items, err := h.service.ListAll(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": menuItemResponses(items)})
}

// AddItem POST /restaurants/:id/menu-items.
func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.AddItem(c.Context(), identity, c.Params("id"), menuItemInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewMenuItemResponse(item)})
}

// UpdateItem PUT /restaurants/:id/menu-items/:itemId.
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.UpdateItem(c.Context(), identity, c.Params("id"), c.Params("itemId"), menuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewMenuItemResponse(item)})
}

// RemoveItem DELETE /restaurants/:id/menu-items/:itemId.
func (h *MenuHandler) RemoveItem(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	if err := h.service.RemoveItem(c.Context(), identity, c.Params("id"), c.Params("itemId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Menu item removed"})
}

func menuItemInput(req dto.MenuItemRequest) service.MenuItemInput {
	return service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		Available:   req.Available,
	}
}

func menuItemResponses(items []domain.MenuItem) []dto.MenuItemResponse {
	responses := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, dto.NewMenuItemResponse(&items[i]))
	}
	return responses
}
