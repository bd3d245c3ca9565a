package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/htz-portal/portal-api/utils"
)

// JWTSecret returns the signing secret. A default keeps local development
// working; production must set JWT_SECRET.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "htz_portal_dev_secret"
	}
	return []byte(secret)
}

// Protected validates the bearer token and stores userID and role name in
// the request locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Error(c, fiber.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Error(c, fiber.StatusUnauthorized, "Invalid token claims")
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return utils.Error(c, fiber.StatusUnauthorized, "Invalid user ID in token")
			}
			role, _ := claims["role"].(string)

			c.Locals("userID", userID)
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// extractUserID handles the numeric formats a JWT library may decode into.
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Error(c, fiber.StatusUnauthorized, "Invalid or expired token")
}
