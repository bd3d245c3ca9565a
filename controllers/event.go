package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/htz-portal/portal-api/cache"
	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

const eventPageSize = 10

// GetEvents returns the admin event list.
func GetEvents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := db.DB.Model(&models.Event{}).Preload("Category")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var items []models.Event
	if err := query.Order("start_time DESC").
		Offset((page - 1) * eventPageSize).Limit(eventPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get events")
	}

	return c.JSON(fiber.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": eventPageSize,
	})
}

// GetEvent returns one event by ID.
func GetEvent(c *fiber.Ctx) error {
	var item models.Event
	if err := db.DB.Preload("Category").First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}
	return c.JSON(item)
}

type eventInput struct {
	TitleVi              string     `json:"title_vi" validate:"required,min=3,max=250"`
	TitleEn              string     `json:"title_en" validate:"max=250"`
	SummaryVi            string     `json:"summary_vi" validate:"max=1000"`
	SummaryEn            string     `json:"summary_en" validate:"max=1000"`
	BodyVi               string     `json:"body_vi"`
	BodyEn               string     `json:"body_en"`
	VenueVi              string     `json:"venue_vi"`
	VenueEn              string     `json:"venue_en"`
	CoverURL             string     `json:"cover_url"`
	CategoryID           uint       `json:"category_id" validate:"required"`
	StartTime            time.Time  `json:"start_time" validate:"required"`
	EndTime              time.Time  `json:"end_time" validate:"required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	PublishAt            *time.Time `json:"publish_at"`
}

// CreateEvent creates a draft event.
func CreateEvent(c *fiber.Ctx) error {
	input := new(eventInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}
	if input.EndTime.Before(input.StartTime) {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "End time must be after start time")
	}

	slug := utils.MakeSlug(input.TitleVi)
	var existing models.Event
	if db.DB.Where("slug = ?", slug).First(&existing).RowsAffected > 0 {
		slug = utils.UniqueSlug(input.TitleVi)
	}

	authorID, _ := c.Locals("userID").(uint)
	item := models.Event{
		Slug:                 slug,
		TitleVi:              input.TitleVi,
		TitleEn:              input.TitleEn,
		SummaryVi:            input.SummaryVi,
		SummaryEn:            input.SummaryEn,
		BodyVi:               input.BodyVi,
		BodyEn:               input.BodyEn,
		VenueVi:              input.VenueVi,
		VenueEn:              input.VenueEn,
		CoverURL:             input.CoverURL,
		CategoryID:           input.CategoryID,
		AuthorID:             authorID,
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		RegistrationDeadline: input.RegistrationDeadline,
		Status:               models.StatusDraft,
		PublishAt:            input.PublishAt,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateEvent applies changed fields to an event.
func UpdateEvent(c *fiber.Ctx) error {
	var item models.Event
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}

	input := new(eventInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}
	if input.EndTime.Before(input.StartTime) {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "End time must be after start time")
	}

	item.TitleVi = input.TitleVi
	item.TitleEn = input.TitleEn
	item.SummaryVi = input.SummaryVi
	item.SummaryEn = input.SummaryEn
	item.BodyVi = input.BodyVi
	item.BodyEn = input.BodyEn
	item.VenueVi = input.VenueVi
	item.VenueEn = input.VenueEn
	item.CoverURL = input.CoverURL
	item.CategoryID = input.CategoryID
	item.StartTime = input.StartTime
	item.EndTime = input.EndTime
	item.RegistrationDeadline = input.RegistrationDeadline
	item.PublishAt = input.PublishAt

	if err := db.DB.Save(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update event")
	}

	cache.InvalidateEvents()
	return c.JSON(item)
}

// PublishEvent moves an event to published immediately.
func PublishEvent(c *fiber.Ctx) error {
	var item models.Event
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}

	now := time.Now()
	item.Status = models.StatusPublished
	item.PublishAt = &now
	if err := db.DB.Save(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to publish event")
	}

	cache.InvalidateEvents()
	return c.JSON(item)
}

// DeleteEvent soft-deletes an event.
func DeleteEvent(c *fiber.Ctx) error {
	var item models.Event
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}
	if err := db.DB.Delete(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete event")
	}

	cache.InvalidateEvents()
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPublicEvents returns published upcoming events, localized and cached.
func GetPublicEvents(c *fiber.Ctx) error {
	lang := c.Query("lang", "vi")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	key := cache.EventListKey(lang, page)
	var cached []models.LocalizedEvent
	if cache.GetJSON(key, &cached) {
		return c.JSON(cached)
	}

	var items []models.Event
	if err := db.DB.Preload("Category").
		Where("status = ?", models.StatusPublished).
		Order("start_time DESC").
		Offset((page - 1) * eventPageSize).Limit(eventPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get events")
	}

	out := make([]models.LocalizedEvent, 0, len(items))
	for i := range items {
		out = append(out, items[i].Localize(lang, false))
	}
	cache.SetJSON(key, out, 5*time.Minute)
	return c.JSON(out)
}
