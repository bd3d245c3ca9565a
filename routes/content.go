package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
	"github.com/htz-portal/portal-api/middleware"
)

// SetupContentRoutes configures the news, event and category admin routes.
func SetupContentRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected())

	news := admin.Group("/news")
	news.Get("/", middleware.RequirePermission("news", "read"), controllers.GetNewsList)
	news.Get("/:id", middleware.RequirePermission("news", "read"), controllers.GetNews)
	news.Post("/", middleware.RequirePermission("news", "create"), controllers.CreateNews)
	news.Put("/:id", middleware.RequirePermission("news", "update"), controllers.UpdateNews)
	news.Patch("/:id/publish", middleware.RequirePermission("news", "publish"), controllers.PublishNews)
	news.Delete("/:id", middleware.RequirePermission("news", "delete"), controllers.DeleteNews)

	events := admin.Group("/events")
	events.Get("/", middleware.RequirePermission("events", "read"), controllers.GetEvents)
	events.Get("/:id", middleware.RequirePermission("events", "read"), controllers.GetEvent)
	events.Post("/", middleware.RequirePermission("events", "create"), controllers.CreateEvent)
	events.Put("/:id", middleware.RequirePermission("events", "update"), controllers.UpdateEvent)
	events.Patch("/:id/publish", middleware.RequirePermission("events", "publish"), controllers.PublishEvent)
	events.Delete("/:id", middleware.RequirePermission("events", "delete"), controllers.DeleteEvent)

	categories := admin.Group("/categories")
	categories.Get("/", middleware.RequirePermission("categories", "read"), controllers.GetCategories)
	categories.Post("/", middleware.RequirePermission("categories", "create"), controllers.CreateCategory)
	categories.Put("/:id", middleware.RequirePermission("categories", "update"), controllers.UpdateCategory)
	categories.Delete("/:id", middleware.RequirePermission("categories", "delete"), controllers.DeleteCategory)

	documents := admin.Group("/documents")
	documents.Get("/", middleware.RequirePermission("documents", "read"), controllers.GetDocuments)
	documents.Post("/", middleware.RequirePermission("documents", "create"), controllers.CreateDocument)
	documents.Put("/:id", middleware.RequirePermission("documents", "update"), controllers.UpdateDocument)
	documents.Delete("/:id", middleware.RequirePermission("documents", "delete"), controllers.DeleteDocument)
}
