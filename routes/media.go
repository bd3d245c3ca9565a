package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
	"github.com/htz-portal/portal-api/middleware"
)

// SetupMediaRoutes configures the media library routes.
func SetupMediaRoutes(app *fiber.App) {
	media := app.Group("/admin/media", middleware.Protected())

	media.Get("/", middleware.RequirePermission("media", "read"), controllers.GetMediaList)
	media.Post("/", middleware.RequirePermission("media", "upload"), controllers.UploadMedia)
	media.Put("/:id", middleware.RequirePermission("media", "update"), controllers.UpdateMedia)
	media.Delete("/:id", middleware.RequirePermission("media", "delete"), controllers.DeleteMedia)
}
