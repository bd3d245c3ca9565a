package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// GetUsers returns all users with their role badge.
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := db.DB.Preload("Role").Order("created_at").Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get users")
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return c.JSON(views)
}

type userInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateUser creates an account with a generated temporary password and
// mails the credentials to the new user.
func CreateUser(c *fiber.Ctx) error {
	input := new(userInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var existing models.User
	if db.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "User with this username or email already exists")
	}

	var role models.Role
	if db.DB.Where("name = ? AND is_active = ?", input.Role, true).First(&role).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Role is unknown or inactive")
	}

	password := utils.GeneratePassword(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: string(hashed),
		RoleID:   role.ID,
		Role:     role,
		IsActive: true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	go sendWelcomeEmail(user.Email, user.Username, password)

	cache.Invalidate(cache.KeyRoleStats)
	return c.Status(fiber.StatusCreated).JSON(user.View())
}

type userUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// UpdateUser applies changed fields, resolving a role change by name.
func UpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.Preload("Role").First(&user, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	update := new(userUpdate)
	if err := c.BodyParser(update); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if update.Email != nil && *update.Email != user.Email {
		var existing models.User
		if db.DB.Where("email = ? AND id <> ?", *update.Email, user.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "User with this email already exists")
		}
		user.Email = *update.Email
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Role != nil && *update.Role != user.Role.Name {
		var role models.Role
		if db.DB.Where("name = ? AND is_active = ?", *update.Role, true).First(&role).RowsAffected == 0 {
			return utils.Error(c, fiber.StatusUnprocessableEntity, "Role is unknown or inactive")
		}
		user.RoleID = role.ID
		user.Role = role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil {
		if len(*update.Password) < 8 {
			return utils.Error(c, fiber.StatusUnprocessableEntity, "Password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
		user.Password = string(hashed)
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.JSON(user.View())
}

// DeleteUser removes an account. Callers cannot delete themselves.
func DeleteUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if callerID, _ := c.Locals("userID").(uint); callerID == user.ID {
		return utils.Error(c, fiber.StatusForbidden, "You cannot delete your own account")
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	cache.Invalidate(cache.KeyRoleStats)
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleUserStatus flips is_active. Callers cannot deactivate themselves.
func ToggleUserStatus(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.Preload("Role").First(&user, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if callerID, _ := c.Locals("userID").(uint); callerID == user.ID && user.IsActive {
		return utils.Error(c, fiber.StatusForbidden, "You cannot deactivate your own account")
	}

	user.IsActive = !user.IsActive
	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return c.JSON(user.View())
}

func sendWelcomeEmail(to, username, password string) {
	subject := "Your portal account"
	body := fmt.Sprintf(`
		<p>An account has been created for you on the Hi-Tech Zone portal.</p>
		<p><strong>Username:</strong> %s<br/>
		<strong>Temporary password:</strong> %s</p>
		<p>Please sign in and change your password.</p>
	`, username, password)
	if err := utils.SendEmail(to, subject, body); err != nil {
		logger.L.Errorw("failed to send welcome email", "to", to, "error", err)
	}
}
