package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
)

// newTestApp wires the handlers against a per-test in-memory database.
// Auth middleware is skipped; the caller identity is injected directly.
func newTestApp(t *testing.T, callerID uint, callerRole string) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Role{}, &models.User{}))
	db.DB = conn

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", callerID)
		c.Locals("role", callerRole)
		return c.Next()
	})

	app.Get("/rbac/catalog", GetCatalog)
	app.Get("/rbac/roles", GetRoles)
	app.Get("/rbac/roles/stats", GetRoleStats)
	app.Post("/rbac/roles", CreateRole)
	app.Put("/rbac/roles/:id", UpdateRole)
	app.Delete("/rbac/roles/:id", DeleteRole)
	app.Patch("/rbac/roles/:id/toggle-status", ToggleRoleStatus)

	app.Get("/rbac/users", GetUsers)
	app.Post("/rbac/users", CreateUser)
	app.Put("/rbac/users/:id", UpdateUser)
	app.Delete("/rbac/users/:id", DeleteUser)
	app.Patch("/rbac/users/:id/toggle-status", ToggleUserStatus)

	return app
}

func perform(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	return body.Message
}

func seedRoles(t *testing.T) (admin, editor, reporter models.Role) {
	t.Helper()
	admin = models.Role{
		Name:        "admin",
		Description: "Administrator with full access to every module",
		Permissions: models.FullCatalogPermissions(),
		IsActive:    true,
		IsSystem:    true,
	}
	editor = models.Role{
		Name:        "editor",
		Description: "Editor managing portal content",
		Permissions: models.PermissionMap{"news": {"create", "update"}},
		IsActive:    true,
		IsSystem:    true,
	}
	reporter = models.Role{
		Name:        "reporter",
		Description: "Drafts news articles for review",
		Permissions: models.PermissionMap{"news": {"create"}},
		IsActive:    true,
	}
	require.NoError(t, db.DB.Create(&admin).Error)
	require.NoError(t, db.DB.Create(&editor).Error)
	require.NoError(t, db.DB.Create(&reporter).Error)
	return admin, editor, reporter
}

func seedUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@portal.local",
		Password: "x",
		RoleID:   role.ID,
		IsActive: true,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func TestGetCatalogEndpoint(t *testing.T) {
	app := newTestApp(t, 1, "admin")

	resp := perform(t, app, http.MethodGet, "/rbac/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cats []models.CatalogCategory
	decode(t, resp, &cats)
	assert.Len(t, cats, 9)
	assert.Equal(t, "users", cats[0].Key)
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	seedRoles(t)

	input := fiber.Map{
		"name":        "reporter",
		"description": "Another reporter role attempt",
	}
	resp := perform(t, app, http.MethodPost, "/rbac/roles", input)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, message(t, resp), "already exists")
}

func TestCreateRoleValidation(t *testing.T) {
	app := newTestApp(t, 1, "admin")

	cases := []fiber.Map{
		{"name": "ab", "description": "valid description here"},
		{"name": "valid_name", "description": "short"},
		{"name": "valid_name", "description": "valid description here",
			"permissions": fiber.Map{"payments": []string{"read"}}},
	}
	for _, input := range cases {
		resp := perform(t, app, http.MethodPost, "/rbac/roles", input)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "input %v", input)
	}
}

func TestCreateRolePrunesEmptyActionSets(t *testing.T) {
	app := newTestApp(t, 1, "admin")

	input := fiber.Map{
		"name":        "auditor",
		"description": "Reviews published content only",
		"permissions": fiber.Map{
			"news":   []string{"read"},
			"events": []string{},
		},
	}
	resp := perform(t, app, http.MethodPost, "/rbac/roles", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var role models.Role
	decode(t, resp, &role)
	assert.Equal(t, models.PermissionMap{"news": {"read"}}, role.Permissions)
	assert.True(t, role.IsActive)
	assert.False(t, role.IsSystem)
}

func TestUpdateSystemRoleGuards(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, editor, _ := seedRoles(t)
	path := fmt.Sprintf("/rbac/roles/%d", editor.ID)

	resp := perform(t, app, http.MethodPut, path, fiber.Map{"name": "chief_editor"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = perform(t, app, http.MethodPut, path, fiber.Map{"is_active": false})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// description and permissions of system roles stay editable
	resp = perform(t, app, http.MethodPut, path, fiber.Map{
		"description": "Editor with event duties as well",
		"permissions": fiber.Map{"news": []string{"create", "update"}, "events": []string{"create"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Role
	decode(t, resp, &updated)
	assert.Equal(t, "editor", updated.Name)
	assert.Equal(t, []string{"create"}, []string(updated.Permissions["events"]))
}

func TestDeleteRoleGuards(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	admin, _, reporter := seedRoles(t)
	seedUser(t, "lan.nguyen", reporter)

	resp := perform(t, app, http.MethodDelete, fmt.Sprintf("/rbac/roles/%d", admin.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = perform(t, app, http.MethodDelete, fmt.Sprintf("/rbac/roles/%d", reporter.ID), nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Role still has assigned users", message(t, resp))

	// unassigned custom role deletes cleanly
	free := models.Role{Name: "auditor", Description: "Reviews published content", IsActive: true}
	require.NoError(t, db.DB.Create(&free).Error)

	resp = perform(t, app, http.MethodDelete, fmt.Sprintf("/rbac/roles/%d", free.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	db.DB.Model(&models.Role{}).Where("name = ?", "auditor").Count(&count)
	assert.Zero(t, count)

	// the user keeps its soft role reference after role churn
	var user models.User
	require.NoError(t, db.DB.Where("username = ?", "lan.nguyen").First(&user).Error)
	assert.Equal(t, reporter.ID, user.RoleID)
}

func TestToggleRoleStatus(t *testing.T) {
	app := newTestApp(t, 1, "editor")
	_, editor, reporter := seedRoles(t)

	// system roles cannot be deactivated
	resp := perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/roles/%d/toggle-status", editor.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/roles/%d/toggle-status", reporter.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled models.Role
	decode(t, resp, &toggled)
	assert.False(t, toggled.IsActive)

	// reactivation is always allowed
	resp = perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/roles/%d/toggle-status", reporter.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &toggled)
	assert.True(t, toggled.IsActive)
}

func TestToggleOwnRoleRejected(t *testing.T) {
	app := newTestApp(t, 3, "reporter")
	_, _, reporter := seedRoles(t)

	resp := perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/roles/%d/toggle-status", reporter.ID), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You cannot deactivate your own role", message(t, resp))
}

func TestRoleStatsCountsUsersPerRole(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	admin, editor, _ := seedRoles(t)
	seedUser(t, "root", admin)
	seedUser(t, "lan.nguyen", editor)
	seedUser(t, "minh.tran", editor)

	resp := perform(t, app, http.MethodGet, "/rbac/roles/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []models.RoleStat
	decode(t, resp, &stats)

	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[s.Name] = s.UserCount
	}
	assert.Equal(t, int64(1), counts["admin"])
	assert.Equal(t, int64(2), counts["editor"])
	assert.Equal(t, int64(0), counts["reporter"])
}
