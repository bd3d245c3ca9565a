package utils

import "github.com/gofiber/fiber/v2"

// Error writes the API error body. Every non-2xx response carries
// {message: string}; admin clients surface it verbatim.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}
