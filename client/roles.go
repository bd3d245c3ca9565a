package client

import (
	"context"
	"fmt"

	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/querycache"
)

// RoleService covers the role endpoints. Input that would be rejected by
// the server anyway (bad names, unknown catalog entries, system-role
// mutations) fails here without issuing a request.
type RoleService struct {
	c *Client
}

// RoleInput is the create payload.
type RoleInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
	IsActive    *bool               `json:"is_active,omitempty"`
}

// RoleUpdate carries the changed fields of an update; nil fields are left
// untouched by the server.
type RoleUpdate struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Permissions map[string][]string `json:"permissions,omitempty"`
	IsActive    *bool               `json:"is_active,omitempty"`
}

// List returns all roles, served from cache while fresh.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	if v, state, ok := s.c.cache.Get(KeyRoleList); ok && state == querycache.StateFresh {
		return v.([]models.Role), nil
	}
	roles, err := s.fetchList(ctx)
	if err != nil {
		return nil, err
	}
	s.c.cache.Set(KeyRoleList, roles)
	return roles, nil
}

// ActiveRoles returns the roles selectable in the user form.
func (s *RoleService) ActiveRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

// Stats returns {name, user_count} aggregates. Read-only: two calls
// without an intervening mutation hit the same cached value.
func (s *RoleService) Stats(ctx context.Context) ([]models.RoleStat, error) {
	if v, state, ok := s.c.cache.Get(KeyRoleStats); ok && state == querycache.StateFresh {
		return v.([]models.RoleStat), nil
	}
	stats, err := s.fetchStats(ctx)
	if err != nil {
		return nil, err
	}
	s.c.cache.Set(KeyRoleStats, stats)
	return stats, nil
}

// Create validates and persists a new role.
func (s *RoleService) Create(ctx context.Context, input RoleInput) (*models.Role, error) {
	if err := validateRoleName(input.Name); err != nil {
		return nil, err
	}
	if err := validateRoleDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validatePermissions(input.Permissions); err != nil {
		return nil, err
	}
	input.Permissions = models.PermissionMap(input.Permissions).Pruned()

	var role models.Role
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&role).
		Post("/rbac/roles")
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	s.c.syncAfterRoleMutation()
	return &role, nil
}

// Update validates and persists changed fields of an existing role.
func (s *RoleService) Update(ctx context.Context, id uint, update RoleUpdate) (*models.Role, error) {
	if update.Name != nil {
		if err := validateRoleName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := validateRoleDescription(*update.Description); err != nil {
			return nil, err
		}
	}
	if update.Permissions != nil {
		if err := validatePermissions(update.Permissions); err != nil {
			return nil, err
		}
		update.Permissions = models.PermissionMap(update.Permissions).Pruned()
	}

	cachedName := ""
	if cached, ok := s.cachedRole(id); ok {
		cachedName = cached.Name
		if cached.IsSystem {
			renamed := update.Name != nil && *update.Name != cached.Name
			deactivated := update.IsActive != nil && !*update.IsActive
			if renamed || deactivated {
				return nil, &ProtectedRoleError{Role: cached.Name}
			}
		}
	}

	var role models.Role
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetBody(update).
		SetResult(&role).
		Put(fmt.Sprintf("/rbac/roles/%d", id))
	if err := apiError(resp, err, cachedName); err != nil {
		return nil, err
	}
	s.c.syncAfterRoleMutation()
	return &role, nil
}

// Delete removes a role. System roles are rejected locally; roles that
// still have assigned users come back as a ConflictError.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	cachedName := ""
	if cached, ok := s.cachedRole(id); ok {
		cachedName = cached.Name
		if cached.IsSystem {
			return &ProtectedRoleError{Role: cached.Name}
		}
	}

	resp, err := s.c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/rbac/roles/%d", id))
	if err := apiError(resp, err, cachedName); err != nil {
		return err
	}
	s.c.syncAfterRoleMutation()
	return nil
}

// ToggleStatus flips is_active. Deactivating a system role is rejected
// locally when the target is known.
func (s *RoleService) ToggleStatus(ctx context.Context, id uint) (*models.Role, error) {
	cachedName := ""
	if cached, ok := s.cachedRole(id); ok {
		cachedName = cached.Name
		if cached.IsSystem && cached.IsActive {
			return nil, &ProtectedRoleError{Role: cached.Name}
		}
	}

	var role models.Role
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetResult(&role).
		Patch(fmt.Sprintf("/rbac/roles/%d/toggle-status", id))
	if err := apiError(resp, err, cachedName); err != nil {
		return nil, err
	}
	s.c.syncAfterRoleMutation()
	return &role, nil
}

// MergePermissions is the checkbox-toggle helper of the role form: it
// returns current with action added to (or removed from) category, pruned,
// ready to submit.
func MergePermissions(current map[string][]string, category, action string, granted bool) map[string][]string {
	merged := make(models.PermissionMap, len(current)+1)
	for cat, actions := range current {
		merged[cat] = append([]string(nil), actions...)
	}
	if granted {
		merged[category] = append(merged[category], action)
	} else {
		kept := merged[category][:0]
		for _, a := range merged[category] {
			if a != action {
				kept = append(kept, a)
			}
		}
		merged[category] = kept
	}
	return merged.Pruned()
}

func (s *RoleService) fetchList(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetResult(&roles).
		Get("/rbac/roles")
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) fetchStats(ctx context.Context) ([]models.RoleStat, error) {
	var stats []models.RoleStat
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		Get("/rbac/roles/stats")
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	return stats, nil
}

// cachedRole finds a role by id in the cached role list, fresh or stale.
func (s *RoleService) cachedRole(id uint) (models.Role, bool) {
	v, _, ok := s.c.cache.Get(KeyRoleList)
	if !ok {
		return models.Role{}, false
	}
	for _, r := range v.([]models.Role) {
		if r.ID == id {
			return r, true
		}
	}
	return models.Role{}, false
}

func validateRoleName(name string) error {
	if !models.ValidRoleName(name) {
		return &ValidationError{Field: "name", Reason: "must match ^[a-zA-Z0-9_-]{3,50}$"}
	}
	return nil
}

func validateRoleDescription(description string) error {
	if !models.ValidRoleDescription(description) {
		return &ValidationError{
			Field:  "description",
			Reason: fmt.Sprintf("must be between %d and %d characters", models.RoleDescriptionMin, models.RoleDescriptionMax),
		}
	}
	return nil
}

func validatePermissions(perms map[string][]string) error {
	if err := models.ValidatePermissions(perms); err != nil {
		return &ValidationError{Field: "permissions", Reason: err.Error()}
	}
	return nil
}
