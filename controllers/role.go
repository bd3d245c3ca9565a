package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// GetCatalog returns the fixed permission catalog the role form renders.
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(models.Categories())
}

// GetRoles returns all roles.
func GetRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := db.DB.Order("created_at").Find(&roles).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get roles")
	}
	return c.JSON(roles)
}

// GetRoleStats returns {name, user_count} per role, joined at read time.
func GetRoleStats(c *fiber.Ctx) error {
	var stats []models.RoleStat
	if cache.GetJSON(cache.KeyRoleStats, &stats) {
		return c.JSON(stats)
	}

	err := db.DB.Model(&models.Role{}).
		Select("roles.name AS name, COUNT(users.id) AS user_count").
		Joins("LEFT JOIN users ON users.role_id = roles.id").
		Group("roles.name").
		Order("roles.name").
		Scan(&stats).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get role stats")
	}

	cache.SetJSON(cache.KeyRoleStats, stats, time.Minute)
	return c.JSON(stats)
}

type roleInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions models.PermissionMap `json:"permissions"`
	IsActive    *bool                `json:"is_active"`
}

// CreateRole creates a new role from validated form input.
func CreateRole(c *fiber.Ctx) error {
	input := new(roleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := validateRoleInput(input.Name, input.Description, input.Permissions); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var existing models.Role
	if db.DB.Where("name = ?", input.Name).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Role with this name already exists")
	}

	role := models.Role{
		Name:        input.Name,
		Description: input.Description,
		Permissions: input.Permissions.Pruned(),
		IsActive:    true,
	}
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}
	if err := db.DB.Create(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create role")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.Status(fiber.StatusCreated).JSON(role)
}

type roleUpdate struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Permissions models.PermissionMap `json:"permissions"`
	IsActive    *bool                `json:"is_active"`
}

// UpdateRole applies the changed fields of an existing role. System roles
// keep their name and active state.
func UpdateRole(c *fiber.Ctx) error {
	var role models.Role
	if err := db.DB.First(&role, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	update := new(roleUpdate)
	if err := c.BodyParser(update); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if role.IsSystem {
		if update.Name != nil && *update.Name != role.Name {
			return utils.Error(c, fiber.StatusForbidden, "System role name cannot be changed")
		}
		if update.IsActive != nil && !*update.IsActive {
			return utils.Error(c, fiber.StatusForbidden, "System roles cannot be deactivated")
		}
	}

	if update.Name != nil && *update.Name != role.Name {
		if !models.ValidRoleName(*update.Name) {
			return utils.Error(c, fiber.StatusUnprocessableEntity, "Role name must match ^[a-zA-Z0-9_-]{3,50}$")
		}
		var existing models.Role
		if db.DB.Where("name = ? AND id <> ?", *update.Name, role.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Role with this name already exists")
		}
		role.Name = *update.Name
	}
	if update.Description != nil {
		if !models.ValidRoleDescription(*update.Description) {
			return utils.Error(c, fiber.StatusUnprocessableEntity, "Description must be between 10 and 500 characters")
		}
		role.Description = *update.Description
	}
	if update.Permissions != nil {
		if err := models.ValidatePermissions(update.Permissions); err != nil {
			return utils.Error(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		role.Permissions = update.Permissions.Pruned()
	}
	if update.IsActive != nil {
		role.IsActive = *update.IsActive
	}

	if err := db.DB.Save(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update role")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.JSON(role)
}

// DeleteRole removes a role that is neither a system role nor still
// assigned to users.
func DeleteRole(c *fiber.Ctx) error {
	var role models.Role
	if err := db.DB.First(&role, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}
	if role.IsSystem {
		return utils.Error(c, fiber.StatusForbidden, "System roles cannot be deleted")
	}

	var userCount int64
	db.DB.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&userCount)
	if userCount > 0 {
		return utils.Error(c, fiber.StatusConflict, "Role still has assigned users")
	}

	if err := db.DB.Delete(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete role")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleRoleStatus flips is_active. System roles stay active, and callers
// cannot deactivate the role they themselves hold.
func ToggleRoleStatus(c *fiber.Ctx) error {
	var role models.Role
	if err := db.DB.First(&role, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}
	if role.IsActive {
		if role.IsSystem {
			return utils.Error(c, fiber.StatusForbidden, "System roles cannot be deactivated")
		}
		if callerRole, _ := c.Locals("role").(string); callerRole == role.Name {
			return utils.Error(c, fiber.StatusForbidden, "You cannot deactivate your own role")
		}
	}

	role.IsActive = !role.IsActive
	if err := db.DB.Save(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update role")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.JSON(role)
}

func validateRoleInput(name, description string, perms models.PermissionMap) string {
	if !models.ValidRoleName(name) {
		return "Role name must match ^[a-zA-Z0-9_-]{3,50}$"
	}
	if !models.ValidRoleDescription(description) {
		return "Description must be between 10 and 500 characters"
	}
	if err := models.ValidatePermissions(perms); err != nil {
		return err.Error()
	}
	return ""
}
