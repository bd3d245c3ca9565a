package controllers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// GetSettings returns the site configuration as a key -> value map.
func GetSettings(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := db.DB.Find(&settings).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get settings")
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return c.JSON(out)
}

// UpdateSettings upserts the submitted key -> value pairs.
func UpdateSettings(c *fiber.Ctx) error {
	input := make(map[string]string)
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if len(input) == 0 {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "No settings provided")
	}

	for key, value := range input {
		var setting models.Setting
		if db.DB.Where("key = ?", key).First(&setting).RowsAffected > 0 {
			setting.Value = value
			db.DB.Save(&setting)
		} else {
			db.DB.Create(&models.Setting{Key: key, Value: value})
		}
	}

	return GetSettings(c)
}

// GetSystemStats returns entity counts for the admin dashboard.
func GetSystemStats(c *fiber.Ctx) error {
	stats := fiber.Map{}
	counts := map[string]interface{}{
		"users":     &models.User{},
		"roles":     &models.Role{},
		"news":      &models.News{},
		"events":    &models.Event{},
		"documents": &models.Document{},
		"media":     &models.Media{},
	}
	for name, model := range counts {
		var n int64
		db.DB.Model(model).Count(&n)
		stats[name] = n
	}
	return c.JSON(stats)
}

// RunBackup exports the core tables to a timestamped JSON file and returns
// its path.
func RunBackup(c *fiber.Ctx) error {
	dir := os.Getenv("BACKUP_DIR")
	if dir == "" {
		dir = "backups"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create backup directory")
	}

	dump := map[string]interface{}{}

	var roles []models.Role
	db.DB.Find(&roles)
	dump["roles"] = roles

	var users []models.User
	db.DB.Find(&users)
	for i := range users {
		users[i].Password = ""
	}
	dump["users"] = users

	var news []models.News
	db.DB.Find(&news)
	dump["news"] = news

	var events []models.Event
	db.DB.Find(&events)
	dump["events"] = events

	var documents []models.Document
	db.DB.Find(&documents)
	dump["documents"] = documents

	var settings []models.Setting
	db.DB.Find(&settings)
	dump["settings"] = settings

	var translations []models.Translation
	db.DB.Find(&translations)
	dump["translations"] = translations

	path := filepath.Join(dir, fmt.Sprintf("portal-backup-%s.json", time.Now().Format("20060102-150405")))
	raw, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to serialize backup")
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to write backup file")
	}

	logger.L.Infow("backup written", "path", path)
	return c.JSON(fiber.Map{
		"path":       path,
		"created_at": time.Now(),
	})
}
