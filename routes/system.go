package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
	"github.com/htz-portal/portal-api/middleware"
)

// SetupSystemRoutes configures translations, settings and system routes.
func SetupSystemRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected())

	admin.Get("/translations", middleware.RequirePermission("translations", "read"), controllers.GetTranslations)
	admin.Put("/translations", middleware.RequirePermission("translations", "update"), controllers.UpsertTranslation)

	system := admin.Group("/system")
	system.Get("/settings", middleware.RequirePermission("system", "read"), controllers.GetSettings)
	system.Put("/settings", middleware.RequirePermission("system", "update"), controllers.UpdateSettings)
	system.Get("/stats", middleware.RequirePermission("system", "stats"), controllers.GetSystemStats)
	system.Post("/backup", middleware.RequirePermission("system", "backup"), controllers.RunBackup)
}
