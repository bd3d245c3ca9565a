package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionMapValueScanRoundtrip(t *testing.T) {
	in := PermissionMap{
		"news":  {"create", "update"},
		"media": {"upload"},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out PermissionMap
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	// postgres drivers may hand back a string
	var fromString PermissionMap
	require.NoError(t, fromString.Scan(`{"system":["read","stats"]}`))
	assert.Equal(t, PermissionMap{"system": {"read", "stats"}}, fromString)

	var fromNil PermissionMap
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)
}

func TestPermissionMapPruned(t *testing.T) {
	in := PermissionMap{
		"news":   {"update", "create", "create", ""},
		"events": {},
		"media":  nil,
	}

	out := in.Pruned()
	assert.Equal(t, PermissionMap{"news": {"create", "update"}}, out)

	// input untouched
	assert.Len(t, in["news"], 4)
	assert.Contains(t, in, "events")
}

func TestValidRoleName(t *testing.T) {
	assert.True(t, ValidRoleName("content_editor"))
	assert.True(t, ValidRoleName("ban-quan-ly"))
	assert.True(t, ValidRoleName("abc"))

	assert.False(t, ValidRoleName("ab"))
	assert.False(t, ValidRoleName("has space"))
	assert.False(t, ValidRoleName("tiếng-việt"))
	assert.False(t, ValidRoleName(strings.Repeat("a", 51)))
}

func TestValidRoleDescription(t *testing.T) {
	assert.False(t, ValidRoleDescription("too short"))
	assert.True(t, ValidRoleDescription("manages portal content"))
	assert.False(t, ValidRoleDescription(strings.Repeat("x", 501)))
	// rune length, not byte length
	assert.True(t, ValidRoleDescription("quản lý nội dung"))
}

func TestRoleCan(t *testing.T) {
	role := Role{
		Name:        "content_editor",
		Permissions: PermissionMap{"news": {"create", "read"}},
		IsActive:    true,
	}

	assert.True(t, role.Can("news", "create"))
	assert.False(t, role.Can("news", "publish"))
	assert.False(t, role.Can("media", "upload"))

	role.IsActive = false
	assert.False(t, role.Can("news", "create"))
}

func TestIsSystemRole(t *testing.T) {
	assert.True(t, IsSystemRole("admin"))
	assert.True(t, IsSystemRole("editor"))
	assert.False(t, IsSystemRole("content_editor"))
}
