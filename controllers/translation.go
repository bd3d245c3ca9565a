package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// GetTranslations returns all translation strings grouped by namespace.
func GetTranslations(c *fiber.Ctx) error {
	var translations []models.Translation
	if err := db.DB.Order("namespace, key").Find(&translations).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get translations")
	}

	grouped := make(map[string][]models.Translation)
	for _, tr := range translations {
		grouped[tr.Namespace] = append(grouped[tr.Namespace], tr)
	}
	return c.JSON(grouped)
}

type translationInput struct {
	Namespace string `json:"namespace" validate:"required,max=50"`
	Key       string `json:"key" validate:"required,max=150"`
	Vi        string `json:"vi" validate:"required"`
	En        string `json:"en"`
}

// UpsertTranslation creates or updates one translation string.
func UpsertTranslation(c *fiber.Ctx) error {
	input := new(translationInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var tr models.Translation
	if db.DB.Where("key = ?", input.Key).First(&tr).RowsAffected > 0 {
		tr.Namespace = input.Namespace
		tr.Vi = input.Vi
		tr.En = input.En
		if err := db.DB.Save(&tr).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update translation")
		}
	} else {
		tr = models.Translation{
			Namespace: input.Namespace,
			Key:       input.Key,
			Vi:        input.Vi,
			En:        input.En,
		}
		if err := db.DB.Create(&tr).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to create translation")
		}
	}

	cache.InvalidateTranslations()
	return c.JSON(tr)
}

// GetPublicTranslations returns the flat key -> string table for one
// language, cached for the portal frontend.
func GetPublicTranslations(c *fiber.Ctx) error {
	lang := c.Query("lang", "vi")

	key := cache.TranslationsKey(lang)
	var cached map[string]string
	if cache.GetJSON(key, &cached) {
		return c.JSON(cached)
	}

	var translations []models.Translation
	if err := db.DB.Find(&translations).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get translations")
	}

	table := make(map[string]string, len(translations))
	for _, tr := range translations {
		if lang == "en" && tr.En != "" {
			table[tr.Key] = tr.En
		} else {
			table[tr.Key] = tr.Vi
		}
	}
	cache.SetJSON(key, table, 10*time.Minute)
	return c.JSON(table)
}
