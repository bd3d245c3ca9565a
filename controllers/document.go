package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

const documentPageSize = 20

// GetDocuments returns documents with paging and a number/title search,
// shared by the admin screen and the public document lookup.
func GetDocuments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := db.DB.Model(&models.Document{}).Preload("Category")
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("number LIKE ? OR title_vi LIKE ? OR title_en LIKE ?", like, like, like)
	}
	if category, err := strconv.Atoi(c.Query("category")); err == nil {
		query = query.Where("category_id = ?", category)
	}

	var total int64
	query.Count(&total)

	var items []models.Document
	if err := query.Order("issued_at DESC").
		Offset((page - 1) * documentPageSize).Limit(documentPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get documents")
	}

	return c.JSON(fiber.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": documentPageSize,
	})
}

type documentInput struct {
	Number      string    `json:"number" validate:"required,max=100"`
	TitleVi     string    `json:"title_vi" validate:"required,min=3,max=500"`
	TitleEn     string    `json:"title_en" validate:"max=500"`
	IssuingBody string    `json:"issuing_body" validate:"required,max=250"`
	IssuedAt    time.Time `json:"issued_at" validate:"required"`
	CategoryID  uint      `json:"category_id" validate:"required"`
	FileURL     string    `json:"file_url"`
	IsEffective *bool     `json:"is_effective"`
}

// CreateDocument records a legal or guidance document.
func CreateDocument(c *fiber.Ctx) error {
	input := new(documentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var existing models.Document
	if db.DB.Where("number = ?", input.Number).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Document with this number already exists")
	}

	doc := models.Document{
		Number:      input.Number,
		TitleVi:     input.TitleVi,
		TitleEn:     input.TitleEn,
		IssuingBody: input.IssuingBody,
		IssuedAt:    input.IssuedAt,
		CategoryID:  input.CategoryID,
		FileURL:     input.FileURL,
		IsEffective: true,
	}
	if input.IsEffective != nil {
		doc.IsEffective = *input.IsEffective
	}
	if err := db.DB.Create(&doc).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create document")
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// UpdateDocument applies changed fields to a document.
func UpdateDocument(c *fiber.Ctx) error {
	var doc models.Document
	if err := db.DB.First(&doc, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Document not found")
	}

	input := new(documentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}
	if input.Number != doc.Number {
		var existing models.Document
		if db.DB.Where("number = ? AND id <> ?", input.Number, doc.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Document with this number already exists")
		}
	}

	doc.Number = input.Number
	doc.TitleVi = input.TitleVi
	doc.TitleEn = input.TitleEn
	doc.IssuingBody = input.IssuingBody
	doc.IssuedAt = input.IssuedAt
	doc.CategoryID = input.CategoryID
	doc.FileURL = input.FileURL
	if input.IsEffective != nil {
		doc.IsEffective = *input.IsEffective
	}

	if err := db.DB.Save(&doc).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update document")
	}
	return c.JSON(doc)
}

// DeleteDocument soft-deletes a document record.
func DeleteDocument(c *fiber.Ctx) error {
	var doc models.Document
	if err := db.DB.First(&doc, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Document not found")
	}
	if err := db.DB.Delete(&doc).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete document")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
