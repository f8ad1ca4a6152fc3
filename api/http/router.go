package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/accounts/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. authMW guards the
// listing, lookup and delete endpoints.
func Register(app *fiber.App, users *handlers.UserHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	app.Post("/users/authenticate", users.Authenticate)
	app.Post("/users/register", users.Register)
	app.Put("/users/update_password", users.UpdatePassword)
	app.Put("/users/forgot_password", users.ForgotPassword)

	app.Get("/users", authMW, users.List)
	app.Get("/users/:id", authMW, users.GetByID)
	app.Delete("/users/:id", authMW, users.Delete)
}
