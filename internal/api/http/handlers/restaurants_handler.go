package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/dto"
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/service"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// RestaurantsHandler manages restaurant endpoints.
type RestaurantsHandler struct {
	service *service.RestaurantService
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurantService *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{service: restaurantService}
}

// Create POST /restaurants.
func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.RestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.service.Create(c.Context(), identity, req.OwnerID, service.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Open:        req.Open,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewRestaurantResponse(restaurant)})
}

// List GET /restaurants. Runs behind optional auth: an admin identity
// widens the listing to closed restaurants.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	restaurants, err := h.service.List(c.Context(), identity, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		items = append(items, dto.NewRestaurantResponse(&restaurants[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// ListOwn GET /restaurants/mine.
func (h *RestaurantsHandler) ListOwn(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	restaurants, err := h.service.ListOwn(c.Context(), identity)
	if err != nil {
		return err
	}

	items := make([]dto.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		items = append(items, dto.NewRestaurantResponse(&restaurants[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Get GET /restaurants/:id. Runs behind optional auth so owners can see
// their own closed restaurants.
func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	restaurant, err := h.service.Get(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRestaurantResponse(restaurant)})
}

// Update PUT /restaurants/:id.
func (h *RestaurantsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.RestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.service.Update(c.Context(), identity, c.Params("id"), service.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Open:        req.Open,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRestaurantResponse(restaurant)})
}

// Delete DELETE /restaurants/:id.
func (h *RestaurantsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	if err := h.service.Delete(c.Context(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Restaurant deleted"})
}
