package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

const mediaPageSize = 24

// GetMediaList returns uploaded assets with paging and kind filter.
func GetMediaList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := db.DB.Model(&models.Media{}).Preload("Uploader")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	query.Count(&total)

	var items []models.Media
	if err := query.Order("created_at DESC").
		Offset((page - 1) * mediaPageSize).Limit(mediaPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get media")
	}

	return c.JSON(fiber.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": mediaPageSize,
	})
}

// UploadMedia stores a multipart file on Cloudinary and records it.
func UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	kind := models.MediaFile
	folder := "portal/files"
	if strings.HasPrefix(mimeType, "image/") {
		kind = models.MediaImage
		folder = "portal/images"
	}

	publicID := uuid.NewString()
	url, err := utils.UploadToCloudinary(c.Context(), file, publicID, folder)
	if err != nil {
		logger.L.Errorw("cloudinary upload failed", "file", fileHeader.Filename, "error", err)
		return utils.Error(c, fiber.StatusBadGateway, "Upload to media storage failed")
	}

	uploaderID, _ := c.Locals("userID").(uint)
	media := models.Media{
		PublicID:   publicID,
		URL:        url,
		FileName:   fileHeader.Filename,
		MimeType:   mimeType,
		Kind:       kind,
		Size:       fileHeader.Size,
		Title:      c.FormValue("title"),
		AltText:    c.FormValue("alt_text"),
		UploaderID: uploaderID,
	}
	if err := db.DB.Create(&media).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to record uploaded media")
	}

	return c.Status(fiber.StatusCreated).JSON(media)
}

type mediaUpdate struct {
	Title   *string `json:"title"`
	AltText *string `json:"alt_text"`
}

// UpdateMedia edits an asset's title and alt text.
func UpdateMedia(c *fiber.Ctx) error {
	var media models.Media
	if err := db.DB.First(&media, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Media not found")
	}

	input := new(mediaUpdate)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Title != nil {
		media.Title = *input.Title
	}
	if input.AltText != nil {
		media.AltText = *input.AltText
	}

	if err := db.DB.Save(&media).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update media")
	}
	return c.JSON(media)
}

// DeleteMedia removes the asset from Cloudinary and the database.
func DeleteMedia(c *fiber.Ctx) error {
	var media models.Media
	if err := db.DB.First(&media, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Media not found")
	}

	if err := utils.DestroyCloudinary(c.Context(), media.PublicID); err != nil {
		// The row is kept so the asset can be retried; an orphan on the
		// CDN is worse than a stale record here.
		logger.L.Errorw("cloudinary destroy failed", "public_id", media.PublicID, "error", err)
		return utils.Error(c, fiber.StatusBadGateway, "Failed to remove media from storage")
	}

	if err := db.DB.Delete(&media).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete media")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
