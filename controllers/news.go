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

const newsPageSize = 10

// GetNewsList returns the admin news list with paging and status filter.
func GetNewsList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	query := db.DB.Model(&models.News{}).Preload("Category").Preload("Author")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category, err := strconv.Atoi(c.Query("category")); err == nil {
		query = query.Where("category_id = ?", category)
	}

	var total int64
	query.Count(&total)

	var items []models.News
	if err := query.Order("created_at DESC").
		Offset((page - 1) * newsPageSize).Limit(newsPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get news")
	}

	return c.JSON(fiber.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": newsPageSize,
	})
}

// GetNews returns one article by ID.
func GetNews(c *fiber.Ctx) error {
	var item models.News
	if err := db.DB.Preload("Category").Preload("Author").First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "News article not found")
	}
	return c.JSON(item)
}

type newsInput struct {
	TitleVi    string     `json:"title_vi" validate:"required,min=3,max=250"`
	TitleEn    string     `json:"title_en" validate:"max=250"`
	SummaryVi  string     `json:"summary_vi" validate:"max=1000"`
	SummaryEn  string     `json:"summary_en" validate:"max=1000"`
	BodyVi     string     `json:"body_vi" validate:"required"`
	BodyEn     string     `json:"body_en"`
	CoverURL   string     `json:"cover_url"`
	CategoryID uint       `json:"category_id" validate:"required"`
	PublishAt  *time.Time `json:"publish_at"`
}

// CreateNews creates a draft article.
func CreateNews(c *fiber.Ctx) error {
	input := new(newsInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}

	var category models.Category
	if db.DB.First(&category, input.CategoryID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Unknown category")
	}

	slug := utils.MakeSlug(input.TitleVi)
	var existing models.News
	if db.DB.Where("slug = ?", slug).First(&existing).RowsAffected > 0 {
		slug = utils.UniqueSlug(input.TitleVi)
	}

	authorID, _ := c.Locals("userID").(uint)
	item := models.News{
		Slug:       slug,
		TitleVi:    input.TitleVi,
		TitleEn:    input.TitleEn,
		SummaryVi:  input.SummaryVi,
		SummaryEn:  input.SummaryEn,
		BodyVi:     input.BodyVi,
		BodyEn:     input.BodyEn,
		CoverURL:   input.CoverURL,
		CategoryID: input.CategoryID,
		AuthorID:   authorID,
		Status:     models.StatusDraft,
		PublishAt:  input.PublishAt,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create news article")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateNews applies changed fields to an article.
func UpdateNews(c *fiber.Ctx) error {
	var item models.News
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "News article not found")
	}

	input := new(newsInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if msg := utils.ValidateStruct(input); msg != "" {
		return utils.Error(c, fiber.StatusUnprocessableEntity, msg)
	}
	if input.CategoryID != item.CategoryID {
		var category models.Category
		if db.DB.First(&category, input.CategoryID).RowsAffected == 0 {
			return utils.Error(c, fiber.StatusUnprocessableEntity, "Unknown category")
		}
	}

	item.TitleVi = input.TitleVi
	item.TitleEn = input.TitleEn
	item.SummaryVi = input.SummaryVi
	item.SummaryEn = input.SummaryEn
	item.BodyVi = input.BodyVi
	item.BodyEn = input.BodyEn
	item.CoverURL = input.CoverURL
	item.CategoryID = input.CategoryID
	item.PublishAt = input.PublishAt

	if err := db.DB.Save(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update news article")
	}

	cache.InvalidateNews()
	return c.JSON(item)
}

// PublishNews moves an article to published immediately.
func PublishNews(c *fiber.Ctx) error {
	var item models.News
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "News article not found")
	}

	now := time.Now()
	item.Status = models.StatusPublished
	item.PublishAt = &now
	if err := db.DB.Save(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to publish news article")
	}

	cache.InvalidateNews()
	return c.JSON(item)
}

// DeleteNews soft-deletes an article.
func DeleteNews(c *fiber.Ctx) error {
	var item models.News
	if err := db.DB.First(&item, c.Params("id")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "News article not found")
	}
	if err := db.DB.Delete(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete news article")
	}

	cache.InvalidateNews()
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPublicNews returns published articles for the portal, localized and
// cached.
func GetPublicNews(c *fiber.Ctx) error {
	lang := c.Query("lang", "vi")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	category := c.Query("category")

	key := cache.NewsListKey(lang, page, category)
	var cached []models.LocalizedNews
	if cache.GetJSON(key, &cached) {
		return c.JSON(cached)
	}

	query := db.DB.Model(&models.News{}).Preload("Category").
		Where("status = ?", models.StatusPublished)
	if category != "" {
		query = query.Joins("JOIN categories ON categories.id = news.category_id").
			Where("categories.slug = ?", category)
	}

	var items []models.News
	if err := query.Order("publish_at DESC").
		Offset((page - 1) * newsPageSize).Limit(newsPageSize).
		Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to get news")
	}

	out := make([]models.LocalizedNews, 0, len(items))
	for i := range items {
		out = append(out, items[i].Localize(lang, false))
	}
	cache.SetJSON(key, out, 5*time.Minute)
	return c.JSON(out)
}

// GetPublicNewsBySlug returns one published article with its body.
func GetPublicNewsBySlug(c *fiber.Ctx) error {
	lang := c.Query("lang", "vi")
	slug := c.Params("slug")

	key := cache.NewsItemKey(lang, slug)
	var cached models.LocalizedNews
	if cache.GetJSON(key, &cached) {
		return c.JSON(cached)
	}

	var item models.News
	if db.DB.Preload("Category").
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&item).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "News article not found")
	}

	db.DB.Model(&item).UpdateColumn("view_count", item.ViewCount+1)

	out := item.Localize(lang, true)
	cache.SetJSON(key, out, 5*time.Minute)
	return c.JSON(out)
}
