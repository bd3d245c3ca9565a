package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/middleware"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// Login authenticates by username or email and returns an access and a
// refresh token.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password" validate:"required"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var user models.User
	if db.DB.Preload("Role").
		Where("username = ? OR email = ?", input.Username, input.Username).
		First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return utils.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}

	accessToken, err := signToken(jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role.Name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	refreshToken, err := signToken(jwt.MapClaims{
		"id":  user.ID,
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate refresh token")
	}

	return c.JSON(fiber.Map{
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         user.View(),
	})
}

// Me returns the caller's profile.
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	return c.JSON(fiber.Map{
		"user":        user.View(),
		"permissions": user.Role.Permissions,
	})
}

// Logout exists for API symmetry; JWTs are stateless and simply expire.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshInput struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	input := new(RefreshInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	token, err := jwt.Parse(input.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return middleware.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid token claims")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	var user models.User
	if db.DB.Preload("Role").First(&user, uint(id)).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return utils.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}

	accessToken, err := signToken(jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role.Name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token": accessToken,
	})
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}
