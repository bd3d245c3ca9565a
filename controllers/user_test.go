package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htz-portal/portal-api/db"
	"github.com/htz-portal/portal-api/models"
)

func TestCreateUserRejectsUnknownOrInactiveRole(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, _, reporter := seedRoles(t)

	resp := perform(t, app, http.MethodPost, "/rbac/users", fiber.Map{
		"username": "lan.nguyen",
		"email":    "lan@portal.local",
		"role":     "payments_clerk",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Role is unknown or inactive", message(t, resp))

	require.NoError(t, db.DB.Model(&reporter).Update("is_active", false).Error)
	resp = perform(t, app, http.MethodPost, "/rbac/users", fiber.Map{
		"username": "lan.nguyen",
		"email":    "lan@portal.local",
		"role":     "reporter",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, editor, _ := seedRoles(t)
	seedUser(t, "lan.nguyen", editor)

	resp := perform(t, app, http.MethodPost, "/rbac/users", fiber.Map{
		"username": "lan.nguyen",
		"email":    "other@portal.local",
		"role":     "editor",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = perform(t, app, http.MethodPost, "/rbac/users", fiber.Map{
		"username": "other",
		"email":    "lan.nguyen@portal.local",
		"role":     "editor",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateUserReturnsRoleAsName(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	seedRoles(t)

	resp := perform(t, app, http.MethodPost, "/rbac/users", fiber.Map{
		"username":  "minh.tran",
		"email":     "minh@portal.local",
		"full_name": "Tran Van Minh",
		"role":      "editor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view models.UserView
	decode(t, resp, &view)
	assert.Equal(t, "minh.tran", view.Username)
	assert.Equal(t, "editor", view.Role)
	assert.True(t, view.IsActive)
}

func TestUpdateUserRoleChange(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, editor, reporter := seedRoles(t)
	user := seedUser(t, "lan.nguyen", editor)
	path := fmt.Sprintf("/rbac/users/%d", user.ID)

	resp := perform(t, app, http.MethodPut, path, fiber.Map{"role": "reporter"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.UserView
	decode(t, resp, &view)
	assert.Equal(t, "reporter", view.Role)

	var stored models.User
	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	assert.Equal(t, reporter.ID, stored.RoleID)

	resp = perform(t, app, http.MethodPut, path, fiber.Map{"role": "no_such_role"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateUserShortPasswordRejected(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, editor, _ := seedRoles(t)
	user := seedUser(t, "lan.nguyen", editor)

	resp := perform(t, app, http.MethodPut, fmt.Sprintf("/rbac/users/%d", user.ID), fiber.Map{"password": "short"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Password must be at least 8 characters", message(t, resp))
}

func TestDeleteUserSelfRejected(t *testing.T) {
	// the first seeded user gets ID 1, matching the injected caller
	app := newTestApp(t, 1, "editor")
	_, editor, _ := seedRoles(t)
	caller := seedUser(t, "self", editor)
	require.Equal(t, uint(1), caller.ID)

	resp := perform(t, app, http.MethodDelete, fmt.Sprintf("/rbac/users/%d", caller.ID), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You cannot delete your own account", message(t, resp))
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t, 1, "admin")
	_, editor, _ := seedRoles(t)
	target := seedUser(t, "lan.nguyen", editor)

	resp := perform(t, app, http.MethodDelete, fmt.Sprintf("/rbac/users/%d", target.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	db.DB.Model(&models.User{}).Where("id = ?", target.ID).Count(&count)
	assert.Zero(t, count)
}

func TestToggleUserStatusSelfDeactivationRejected(t *testing.T) {
	app := newTestApp(t, 1, "editor")
	_, editor, _ := seedRoles(t)
	caller := seedUser(t, "self", editor)
	other := seedUser(t, "lan.nguyen", editor)
	require.Equal(t, uint(1), caller.ID)

	resp := perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/users/%d/toggle-status", caller.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = perform(t, app, http.MethodPatch, fmt.Sprintf("/rbac/users/%d/toggle-status", other.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.UserView
	decode(t, resp, &view)
	assert.False(t, view.IsActive)
}
