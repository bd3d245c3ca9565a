package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/querycache"
)

// counter tracks requests per "METHOD path" so tests can assert which
// calls reached the server.
type counter struct {
	mu    sync.Mutex
	calls map[string]int
}

func newCounter() *counter {
	return &counter{calls: make(map[string]int)}
}

func (c *counter) hit(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[r.Method+" "+r.URL.Path]++
}

func (c *counter) get(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func (c *counter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var testRoles = []models.Role{
	{ID: 1, Name: "admin", Description: "Administrator with full access", IsActive: true, IsSystem: true},
	{ID: 2, Name: "editor", Description: "Editor managing portal content", Permissions: models.PermissionMap{"news": {"create", "update"}}, IsActive: true, IsSystem: true},
	{ID: 3, Name: "reporter", Description: "Drafts news for review", IsActive: true},
}

func TestCreateRoleValidationIssuesNoRequest(t *testing.T) {
	hits := newCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.hit(r)
		writeJSON(w, http.StatusCreated, models.Role{})
	}))
	defer srv.Close()
	c := New(srv.URL, "token")

	cases := []RoleInput{
		{Name: "ab", Description: "valid description here"},
		{Name: "bad name!", Description: "valid description here"},
		{Name: "valid_name", Description: "short"},
		{Name: "valid_name", Description: "valid description here", Permissions: map[string][]string{"payments": {"read"}}},
		{Name: "valid_name", Description: "valid description here", Permissions: map[string][]string{"news": {"approve"}}},
	}
	for _, input := range cases {
		_, err := c.Roles().Create(context.Background(), input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", input)
	}

	assert.Zero(t, hits.total(), "validation failures must not reach the server")
}

func TestDeleteSystemRoleRejectedWithoutNetworkCall(t *testing.T) {
	hits := newCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.hit(r)
		writeJSON(w, http.StatusOK, testRoles)
	}))
	defer srv.Close()
	c := New(srv.URL, "token")

	_, err := c.Roles().List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, hits.total())

	err = c.Roles().Delete(context.Background(), 1)
	var perr *ProtectedRoleError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "admin", perr.Role)
	assert.Equal(t, 1, hits.total(), "protected-role delete must not reach the server")
}

func TestDeactivateSystemRoleRejectedWithoutNetworkCall(t *testing.T) {
	hits := newCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.hit(r)
		writeJSON(w, http.StatusOK, testRoles)
	}))
	defer srv.Close()
	c := New(srv.URL, "token")

	_, err := c.Roles().List(context.Background())
	require.NoError(t, err)

	_, err = c.Roles().ToggleStatus(context.Background(), 2)
	var perr *ProtectedRoleError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "editor", perr.Role)

	_, err = c.Roles().Update(context.Background(), 2, RoleUpdate{IsActive: boolPtr(false)})
	require.ErrorAs(t, err, &perr)

	newName := "chief_editor"
	_, err = c.Roles().Update(context.Background(), 2, RoleUpdate{Name: &newName, Description: strPtr("renamed system role not allowed")})
	require.ErrorAs(t, err, &perr)

	assert.Equal(t, 1, hits.total())
}

func TestCreateRoleMarksDependentQueriesStale(t *testing.T) {
	hits := newCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.hit(r)
		switch r.Method + " " + r.URL.Path {
		case "GET /rbac/roles":
			writeJSON(w, http.StatusOK, testRoles)
		case "GET /rbac/roles/stats":
			writeJSON(w, http.StatusOK, []models.RoleStat{{Name: "admin", UserCount: 1}})
		case "POST /rbac/roles":
			writeJSON(w, http.StatusCreated, models.Role{ID: 4, Name: "auditor"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		}
	}))
	defer srv.Close()
	c := New(srv.URL, "token")
	ctx := context.Background()

	_, err := c.Roles().List(ctx)
	require.NoError(t, err)
	_, err = c.Roles().Stats(ctx)
	require.NoError(t, err)

	_, err = c.Roles().Create(ctx, RoleInput{
		Name:        "auditor",
		Description: "Reviews published content",
	})
	require.NoError(t, err)

	// both dependent queries are refetched in the background and end fresh
	require.Eventually(t, func() bool {
		return hits.get("GET /rbac/roles") == 2 && hits.get("GET /rbac/roles/stats") == 2
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		_, listState, _ := c.Cache().Get(KeyRoleList)
		_, statsState, _ := c.Cache().Get(KeyRoleStats)
		return listState == querycache.StateFresh && statsState == querycache.StateFresh
	}, time.Second, 5*time.Millisecond)
}

func TestPermissionTogglePutsMergedPrunedPayload(t *testing.T) {
	var captured struct {
		Permissions map[string][]string `json:"permissions"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rbac/roles":
			writeJSON(w, http.StatusOK, testRoles)
		case r.Method == http.MethodGet && r.URL.Path == "/rbac/roles/stats":
			writeJSON(w, http.StatusOK, []models.RoleStat{})
		case r.Method == http.MethodPut && r.URL.Path == "/rbac/roles/2":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			writeJSON(w, http.StatusOK, testRoles[1])
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		}
	}))
	defer srv.Close()
	c := New(srv.URL, "token")
	ctx := context.Background()

	roles, err := c.Roles().List(ctx)
	require.NoError(t, err)

	// the editor form toggles the news.publish checkbox on
	editor := roles[1]
	merged := MergePermissions(editor.Permissions, "news", "publish", true)

	_, err = c.Roles().Update(ctx, editor.ID, RoleUpdate{Permissions: merged})
	require.NoError(t, err)

	require.Len(t, captured.Permissions, 1, "only the news category may appear in the payload")
	assert.ElementsMatch(t, []string{"create", "update", "publish"}, captured.Permissions["news"])
}

func TestMergePermissionsRevoke(t *testing.T) {
	current := map[string][]string{"news": {"create"}, "media": {"upload"}}

	out := MergePermissions(current, "news", "create", false)
	assert.Equal(t, map[string][]string{"media": {"upload"}}, out)

	// source map untouched
	assert.Equal(t, []string{"create"}, current["news"])
}

func TestStatsIdempotentAndServedFromCache(t *testing.T) {
	hits := newCounter()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.hit(r)
		writeJSON(w, http.StatusOK, []models.RoleStat{
			{Name: "admin", UserCount: 2},
			{Name: "editor", UserCount: 5},
		})
	}))
	defer srv.Close()
	c := New(srv.URL, "token")
	ctx := context.Background()

	first, err := c.Roles().Stats(ctx)
	require.NoError(t, err)
	second, err := c.Roles().Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits.total())
}

func TestDeleteRoleWithUsersSurfacesConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rbac/roles":
			writeJSON(w, http.StatusOK, testRoles)
		case r.Method == http.MethodDelete && r.URL.Path == "/rbac/roles/3":
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Role still has assigned users"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		}
	}))
	defer srv.Close()
	c := New(srv.URL, "token")
	ctx := context.Background()

	roles, err := c.Roles().List(ctx)
	require.NoError(t, err)

	err = c.Roles().Delete(ctx, 3)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Role still has assigned users", cerr.Message)

	// the cached role list is untouched by the failed delete
	v, _, ok := c.Cache().Get(KeyRoleList)
	require.True(t, ok)
	assert.Equal(t, roles, v.([]models.Role))
}

func TestHTTPErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	}))
	c := New(srv.URL, "token")

	_, err := c.Roles().List(context.Background())
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusInternalServerError, herr.StatusCode)
	assert.Equal(t, "boom", herr.Message)

	// network failure maps to a synthetic HTTPError
	srv.Close()
	_, err = c.Roles().Stats(context.Background())
	require.ErrorAs(t, err, &herr)
	assert.Zero(t, herr.StatusCode)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
