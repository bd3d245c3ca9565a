package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// GetCategories returns all categories, optionally filtered by kind.
func GetCategories(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Category{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var categories []models.Category
	if err := query.Order("kind, display_order").Find(&categories).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get categories")
	}
	return c.JSON(categories)
}

type categoryInput struct {
	NameVi       string              `json:"name_vi" validate:"required,min=2,max=100"`
	NameEn       string              `json:"name_en" validate:"max=100"`
	Kind         models.CategoryKind `json:"kind" validate:"required,oneof=news event document"`
	DisplayOrder int                 `json:"display_order"`
}

// CreateCategory creates a content category.
func CreateCategory(c *fiber.Ctx) error {
	input := new(categoryInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	slug := utils.MakeSlug(input.NameVi)
	var existing models.Category
	if db.DB.Where("slug = ?", slug).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Category with this name already exists")
	}

	category := models.Category{
		Slug:         slug,
		NameVi:       input.NameVi,
		NameEn:       input.NameEn,
		Kind:         input.Kind,
		DisplayOrder: input.DisplayOrder,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory applies changed fields to a category.
func UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := db.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}

	input := new(categoryInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	category.NameVi = input.NameVi
	category.NameEn = input.NameEn
	category.Kind = input.Kind
	category.DisplayOrder = input.DisplayOrder

	if err := db.DB.Save(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	return c.JSON(category)
}

// DeleteCategory removes a category that no content references.
func DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := db.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}

	var inUse int64
	db.DB.Model(&models.News{}).Where("category_id = ?", category.ID).Count(&inUse)
	if inUse == 0 {
		db.DB.Model(&models.Event{}).Where("category_id = ?", category.ID).Count(&inUse)
	}
	if inUse == 0 {
		db.DB.Model(&models.Document{}).Where("category_id = ?", category.ID).Count(&inUse)
	}
	if inUse > 0 {
		return utils.Error(c, fiber.StatusConflict, "Category is still referenced by content")
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
