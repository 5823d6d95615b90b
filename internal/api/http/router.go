package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/http/handlers"
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Restaurants    *handlers.RestaurantsHandler
	Menu           *handlers.MenuHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware.Handle
	optionalAuthn := cfg.AuthMiddleware.Optional

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Get("/me", authn, cfg.Auth.Me)
	authGroup.Post("/password/change", authn, cfg.Auth.ChangePassword)

	ownerOrAdmin := auth.RequireRoles(domain.RoleRestaurantOwner, domain.RoleAdmin)

	restaurants := app.Group("/restaurants")
	restaurants.Get("/", optionalAuthn, cfg.Restaurants.List)
	restaurants.Get("/mine", authn, ownerOrAdmin, cfg.Restaurants.ListOwn)
	restaurants.Post("/", authn, ownerOrAdmin, cfg.Restaurants.Create)
	restaurants.Get("/:id/menu", cfg.Menu.GetMenu)
	restaurants.Get("/:id", optionalAuthn, cfg.Restaurants.Get)
	restaurants.Put("/:id", authn, ownerOrAdmin, auth.RequireOwnership("id"), cfg.Restaurants.Update)
	restaurants.Delete("/:id", authn, ownerOrAdmin, auth.RequireOwnership("id"), cfg.Restaurants.Delete)

	menuItems := restaurants.Group("/:id/menu-items", authn, ownerOrAdmin, auth.RequireOwnership("id"))
	menuItems.Get("/", cfg.Menu.ListAll)
	menuItems.Post("/", cfg.Menu.AddItem)
	menuItems.Put("/:itemId", cfg.Menu.UpdateItem)
	menuItems.Delete("/:itemId", cfg.Menu.RemoveItem)

	restaurants.Get("/:id/orders", authn, ownerOrAdmin, auth.RequireOwnership("id"), cfg.Orders.ListForRestaurant)

	orders := app.Group("/orders", authn)
	orders.Post("/", auth.RequireRoles(domain.RoleCustomer), cfg.Orders.Create)
	orders.Get("/", cfg.Orders.ListOwn)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Patch("/:id/status", cfg.Orders.UpdateStatus)

	users := app.Group("/users", authn)
	users.Get("/", auth.RequireRoles(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:userId", auth.RequireOwnership("userId"), cfg.Users.Get)
	users.Patch("/:userId/status", auth.RequireRoles(domain.RoleAdmin), cfg.Users.SetStatus)
}
