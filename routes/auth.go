package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
	"github.com/htz-portal/portal-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes.
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
