package db

import (
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/htz-portal/portal-api/logger"
	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/utils"
)

// Seed creates the protected system roles, the initial admin account and
// the default site content. Safe to call repeatedly.
func Seed() {
	seedRoles()
	seedAdminUser()
	seedCategories()
	seedSettings()
	seedTranslations()
}

func seedRoles() {
	roles := []models.Role{
		{
			Name:        models.RoleAdmin,
			Description: "Administrator with full access to every module",
			Permissions: models.FullCatalogPermissions(),
			IsActive:    true,
			IsSystem:    true,
		},
		{
			Name:        models.RoleEditor,
			Description: "Editor managing portal content and media",
			Permissions: models.PermissionMap{
				"news":       {"create", "read", "update", "publish"},
				"events":     {"create", "read", "update", "publish"},
				"categories": {"read"},
				"media":      {"upload", "read", "update"},
				"documents":  {"create", "read", "update"},
			},
			IsActive: true,
			IsSystem: true,
		},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			if err := DB.Create(&role).Error; err != nil {
				logger.L.Errorw("failed to seed role", "role", role.Name, "error", err)
			}
		}
	}
}

func seedAdminUser() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	var adminRole models.Role
	if DB.Where("name = ?", models.RoleAdmin).First(&adminRole).RowsAffected == 0 {
		logger.L.Error("admin role missing, cannot seed admin user")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = utils.GeneratePassword(16)
		logger.L.Infow("generated initial admin password", "password", password)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.L.Errorw("failed to hash admin password", "error", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    os.Getenv("ADMIN_EMAIL"),
		FullName: "Portal Administrator",
		Password: string(hashed),
		RoleID:   adminRole.ID,
		IsActive: true,
	}
	if admin.Email == "" {
		admin.Email = "admin@htz-portal.local"
	}
	if err := DB.Create(&admin).Error; err != nil {
		logger.L.Errorw("failed to seed admin user", "error", err)
	}
}

func seedCategories() {
	categories := []models.Category{
		{Slug: "zone-news", NameVi: "Tin hoạt động", NameEn: "Zone News", Kind: models.CategoryNews, DisplayOrder: 1},
		{Slug: "investment", NameVi: "Thu hút đầu tư", NameEn: "Investment", Kind: models.CategoryNews, DisplayOrder: 2},
		{Slug: "conferences", NameVi: "Hội nghị - Hội thảo", NameEn: "Conferences", Kind: models.CategoryEvent, DisplayOrder: 1},
		{Slug: "legal-documents", NameVi: "Văn bản pháp quy", NameEn: "Legal Documents", Kind: models.CategoryDocument, DisplayOrder: 1},
		{Slug: "investment-guides", NameVi: "Hướng dẫn đầu tư", NameEn: "Investment Guides", Kind: models.CategoryDocument, DisplayOrder: 2},
	}
	for _, category := range categories {
		var existing models.Category
		if DB.Where("slug = ?", category.Slug).First(&existing).RowsAffected == 0 {
			DB.Create(&category)
		}
	}
}

func seedSettings() {
	settings := map[string]string{
		"site_name_vi":  "Ban Quản lý Khu Công nghệ cao",
		"site_name_en":  "Hi-Tech Zone Management Authority",
		"contact_email": "contact@htz-portal.local",
		"contact_phone": "",
		"address_vi":    "",
		"address_en":    "",
		"facebook_url":  "",
		"youtube_url":   "",
	}
	for key, value := range settings {
		var existing models.Setting
		if DB.Where("key = ?", key).First(&existing).RowsAffected == 0 {
			DB.Create(&models.Setting{Key: key, Value: value})
		}
	}
}

func seedTranslations() {
	translations := []models.Translation{
		{Namespace: "nav", Key: "nav.home", Vi: "Trang chủ", En: "Home"},
		{Namespace: "nav", Key: "nav.news", Vi: "Tin tức", En: "News"},
		{Namespace: "nav", Key: "nav.events", Vi: "Sự kiện", En: "Events"},
		{Namespace: "nav", Key: "nav.documents", Vi: "Văn bản", En: "Documents"},
		{Namespace: "nav", Key: "nav.investment_guide", Vi: "Hướng dẫn đầu tư", En: "Investment Guide"},
		{Namespace: "common", Key: "common.read_more", Vi: "Xem thêm", En: "Read more"},
		{Namespace: "common", Key: "common.search", Vi: "Tìm kiếm", En: "Search"},
	}
	for _, tr := range translations {
		var existing models.Translation
		if DB.Where("key = ?", tr.Key).First(&existing).RowsAffected == 0 {
			DB.Create(&tr)
		}
	}
}
