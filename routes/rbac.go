package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/controllers"
	"github.com/htz-portal/portal-api/middleware"
)

// SetupRBACRoutes configures the role and user management routes.
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected())

	// Permission catalog (read-only, any role-admin can see it)
	rbac.Get("/catalog", middleware.RequirePermission("roles", "read"), controllers.GetCatalog)

	// Roles
	rbac.Get("/roles", middleware.RequirePermission("roles", "read"), controllers.GetRoles)
	rbac.Get("/roles/stats", middleware.RequirePermission("roles", "read"), controllers.GetRoleStats)
	rbac.Post("/roles", middleware.RequirePermission("roles", "create"), controllers.CreateRole)
	rbac.Put("/roles/:id", middleware.RequirePermission("roles", "update"), controllers.UpdateRole)
	rbac.Delete("/roles/:id", middleware.RequirePermission("roles", "delete"), controllers.DeleteRole)
	rbac.Patch("/roles/:id/toggle-status", middleware.RequirePermission("roles", "update"), controllers.ToggleRoleStatus)

	// Users
	rbac.Get("/users", middleware.RequirePermission("users", "read"), controllers.GetUsers)
	rbac.Post("/users", middleware.RequirePermission("users", "create"), controllers.CreateUser)
	rbac.Put("/users/:id", middleware.RequirePermission("users", "update"), controllers.UpdateUser)
	rbac.Delete("/users/:id", middleware.RequirePermission("users", "delete"), controllers.DeleteUser)
	rbac.Patch("/users/:id/toggle-status", middleware.RequirePermission("users", "update"), controllers.ToggleUserStatus)
}
