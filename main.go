package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/cron"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/routes"
)

func main() {
	logger.Init()
	defer logger.Sync()

	db.Init()
	db.Migrate()
	cache.Init()

	app := fiber.New(fiber.Config{
		AppName: "htz-portal-api",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupContentRoutes(app)
	routes.SetupMediaRoutes(app)
	routes.SetupSystemRoutes(app)
	routes.SetupPublicRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		logger.L.Fatalw("server stopped", "error", err)
	}
}
