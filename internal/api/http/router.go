package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	Items        *handlers.ItemsHandler
	SessionGuard *auth.SessionGuard
}

// RegisterRoutes wires HTTP routes. Session-guarded routes carry the guard
// as a route-level precondition; the item read endpoints are public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	user := app.Group("/user")

	authGroup := user.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout/:userId", cfg.SessionGuard.Handle, cfg.Users.Logout)
	authGroup.Post("/updateUser", cfg.SessionGuard.Handle, cfg.Users.UpdateUser)

	itemGroup := user.Group("/item")
	itemGroup.Post("/addItem", cfg.SessionGuard.Handle, cfg.Items.AddItem)
	itemGroup.Post("/updateItem", cfg.SessionGuard.Handle, cfg.Items.UpdateItem)
	itemGroup.Post("/deleteItem/:id", cfg.SessionGuard.Handle, cfg.Items.DeleteItem)
	itemGroup.Get("/getItemById/:id", cfg.Items.GetItemByID)
	itemGroup.Get("/getAllItems", cfg.Items.GetAllItems)
}
