package models

import "fmt"

// CatalogAction is one selectable action inside a catalog category.
type CatalogAction struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	LabelVi string `json:"label_vi"`
}

// CatalogCategory groups the legal actions for one resource category.
// The admin UI renders one accordion section per category.
type CatalogCategory struct {
	Key           string          `json:"key"`
	Label         string          `json:"label"`
	LabelVi       string          `json:"label_vi"`
	Description   string          `json:"description"`
	DescriptionVi string          `json:"description_vi"`
	Actions       []CatalogAction `json:"actions"`
}

// The permission catalog is fixed at build time. An action key is only
// meaningful within its category ("read" on news is not "read" on system).
var permissionCatalog = []CatalogCategory{
	{
		Key: "users", Label: "Users", LabelVi: "Người dùng",
		Description:   "Manage portal accounts",
		DescriptionVi: "Quản lý tài khoản cổng thông tin",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
		},
	},
	{
		Key: "roles", Label: "Roles", LabelVi: "Vai trò",
		Description:   "Manage roles and their permissions",
		DescriptionVi: "Quản lý vai trò và quyền hạn",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
		},
	},
	{
		Key: "news", Label: "News", LabelVi: "Tin tức",
		Description:   "Manage news articles",
		DescriptionVi: "Quản lý bài viết tin tức",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
			{Key: "publish", Label: "Publish", LabelVi: "Xuất bản"},
		},
	},
	{
		Key: "events", Label: "Events", LabelVi: "Sự kiện",
		Description:   "Manage events and announcements",
		DescriptionVi: "Quản lý sự kiện và thông báo",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
			{Key: "publish", Label: "Publish", LabelVi: "Xuất bản"},
		},
	},
	{
		Key: "categories", Label: "Categories", LabelVi: "Danh mục",
		Description:   "Manage content categories",
		DescriptionVi: "Quản lý danh mục nội dung",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
		},
	},
	{
		Key: "media", Label: "Media", LabelVi: "Thư viện",
		Description:   "Manage uploaded images and files",
		DescriptionVi: "Quản lý hình ảnh và tệp tải lên",
		Actions: []CatalogAction{
			{Key: "upload", Label: "Upload", LabelVi: "Tải lên"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
		},
	},
	{
		Key: "documents", Label: "Documents", LabelVi: "Văn bản",
		Description:   "Manage legal and guidance documents",
		DescriptionVi: "Quản lý văn bản pháp lý và hướng dẫn",
		Actions: []CatalogAction{
			{Key: "create", Label: "Create", LabelVi: "Tạo mới"},
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "delete", Label: "Delete", LabelVi: "Xóa"},
		},
	},
	{
		Key: "translations", Label: "Translations", LabelVi: "Bản dịch",
		Description:   "Manage interface translation strings",
		DescriptionVi: "Quản lý chuỗi dịch giao diện",
		Actions: []CatalogAction{
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
		},
	},
	{
		Key: "system", Label: "System", LabelVi: "Hệ thống",
		Description:   "Site settings, backups and statistics",
		DescriptionVi: "Cài đặt trang, sao lưu và thống kê",
		Actions: []CatalogAction{
			{Key: "read", Label: "View", LabelVi: "Xem"},
			{Key: "update", Label: "Update", LabelVi: "Cập nhật"},
			{Key: "backup", Label: "Backup", LabelVi: "Sao lưu"},
			{Key: "stats", Label: "Statistics", LabelVi: "Thống kê"},
		},
	},
}

// catalogIndex is built once for O(1) category/action lookups.
var catalogIndex = func() map[string]map[string]bool {
	idx := make(map[string]map[string]bool, len(permissionCatalog))
	for _, cat := range permissionCatalog {
		actions := make(map[string]bool, len(cat.Actions))
		for _, a := range cat.Actions {
			actions[a.Key] = true
		}
		idx[cat.Key] = actions
	}
	return idx
}()

// Categories returns the ordered permission catalog.
func Categories() []CatalogCategory {
	out := make([]CatalogCategory, len(permissionCatalog))
	copy(out, permissionCatalog)
	return out
}

// IsValidPermission reports whether action is legal within category.
func IsValidPermission(category, action string) bool {
	actions, ok := catalogIndex[category]
	return ok && actions[action]
}

// FullCatalogPermissions returns every category with all of its actions,
// used to seed the admin role.
func FullCatalogPermissions() PermissionMap {
	perms := make(PermissionMap, len(permissionCatalog))
	for _, cat := range permissionCatalog {
		actions := make([]string, 0, len(cat.Actions))
		for _, a := range cat.Actions {
			actions = append(actions, a.Key)
		}
		perms[cat.Key] = actions
	}
	return perms
}

// ValidatePermissions checks that every key is a known category and every
// action is legal within it.
func ValidatePermissions(perms map[string][]string) error {
	for category, actions := range perms {
		if _, ok := catalogIndex[category]; !ok {
			return fmt.Errorf("unknown permission category %q", category)
		}
		for _, action := range actions {
			if !catalogIndex[category][action] {
				return fmt.Errorf("action %q is not valid for category %q", action, category)
			}
		}
	}
	return nil
}
