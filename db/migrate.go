package db

import (
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
)

// Migrate runs AutoMigrate for every portal model and seeds the system
// roles and default content. Safe on every start.
func Migrate() {
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.News{},
		&models.Event{},
		&models.Media{},
		&models.Document{},
		&models.Translation{},
		&models.Setting{},
	)
	if err != nil {
		logger.L.Fatalw("failed to run migrations", "error", err)
	}

	Seed()
	logger.L.Info("migrations applied")
}
