package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesAreClosedAndOrdered(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)

	keys := make([]string, 0, len(cats))
	for _, cat := range cats {
		keys = append(keys, cat.Key)
		assert.NotEmpty(t, cat.Label)
		assert.NotEmpty(t, cat.LabelVi)
		require.NotEmpty(t, cat.Actions, "category %s has no actions", cat.Key)
	}
	assert.Equal(t, []string{
		"users", "roles", "news", "events", "categories",
		"media", "documents", "translations", "system",
	}, keys)
}

func TestIsValidPermission(t *testing.T) {
	assert.True(t, IsValidPermission("news", "publish"))
	assert.True(t, IsValidPermission("media", "upload"))
	assert.True(t, IsValidPermission("system", "backup"))

	// action names are category-local
	assert.False(t, IsValidPermission("users", "publish"))
	assert.False(t, IsValidPermission("media", "create"))
	assert.False(t, IsValidPermission("payments", "read"))
}

func TestValidatePermissions(t *testing.T) {
	assert.NoError(t, ValidatePermissions(map[string][]string{
		"news":  {"create", "update", "publish"},
		"media": {"upload"},
	}))

	err := ValidatePermissions(map[string][]string{"payments": {"read"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown permission category")

	err = ValidatePermissions(map[string][]string{"translations": {"delete"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid for category")
}

func TestFullCatalogPermissionsAreValid(t *testing.T) {
	perms := FullCatalogPermissions()
	require.NoError(t, ValidatePermissions(perms))
	assert.Len(t, perms, len(Categories()))
}
