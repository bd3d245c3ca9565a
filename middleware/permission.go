package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// RequirePermission checks that the caller's role grants action within the
// given catalog category. Must run after Protected.
func RequirePermission(category, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return utils.Error(c, fiber.StatusUnauthorized, "Authentication required")
		}

		var user models.User
		if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "User not found")
		}
		if !user.IsActive {
			return utils.Error(c, fiber.StatusForbidden, "Account is deactivated")
		}
		if !user.Role.Can(category, action) {
			return utils.Error(c, fiber.StatusForbidden, "You don't have permission to perform this action")
		}

		return c.Next()
	}
}

// RequireRole checks that the caller holds the named role.
func RequireRole(roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return utils.Error(c, fiber.StatusUnauthorized, "Authentication required")
		}

		var user models.User
		if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "User not found")
		}
		if user.Role.Name != roleName {
			return utils.Error(c, fiber.StatusForbidden, "You don't have the required role to perform this action")
		}

		return c.Next()
	}
}
