package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
)

// SetupPublicRoutes configures the unauthenticated portal routes.
func SetupPublicRoutes(app *fiber.App) {
	public := app.Group("/public")

	public.Get("/news", controllers.GetPublicNews)
	public.Get("/news/:slug", controllers.GetPublicNewsBySlug)
	public.Get("/events", controllers.GetPublicEvents)
	public.Get("/documents", controllers.GetDocuments)
	public.Get("/translations", controllers.GetPublicTranslations)
	public.Get("/settings", controllers.GetSettings)
}
