package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"

	"gorm.io/gorm"
)

// PermissionMap holds a role's granted permissions as category -> actions.
// Stored as a JSON column; categories with no actions are pruned, not kept
// as empty arrays.
type PermissionMap map[string][]string

func (p PermissionMap) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return json.Marshal(p)
}

func (p *PermissionMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = PermissionMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PermissionMap", value)
	}
}

func (PermissionMap) GormDataType() string {
	return "json"
}

// Pruned returns a copy without empty action sets and with actions sorted
// and de-duplicated.
func (p PermissionMap) Pruned() PermissionMap {
	out := make(PermissionMap, len(p))
	for category, actions := range p {
		seen := make(map[string]bool, len(actions))
		kept := make([]string, 0, len(actions))
		for _, a := range actions {
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			kept = append(kept, a)
		}
		if len(kept) == 0 {
			continue
		}
		sort.Strings(kept)
		out[category] = kept
	}
	return out
}

// Grants reports whether the map contains action within category.
func (p PermissionMap) Grants(category, action string) bool {
	for _, a := range p[category] {
		if a == action {
			return true
		}
	}
	return false
}

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	Permissions PermissionMap  `json:"permissions"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	IsSystem    bool           `json:"is_system"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// RoleStat is the read-time aggregate shown on the role cards.
type RoleStat struct {
	Name      string `json:"name"`
	UserCount int64  `json:"user_count"`
}

// System roles are seeded at migration. Their name is immutable and they
// cannot be deactivated or deleted.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var roleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)

const (
	RoleDescriptionMin = 10
	RoleDescriptionMax = 500
)

// IsSystemRole reports whether name belongs to a protected system role.
func IsSystemRole(name string) bool {
	return name == RoleAdmin || name == RoleEditor
}

// ValidRoleName reports whether name matches ^[a-zA-Z0-9_-]{3,50}$.
func ValidRoleName(name string) bool {
	return roleNamePattern.MatchString(name)
}

// ValidRoleDescription reports whether description length is within bounds.
func ValidRoleDescription(description string) bool {
	n := len([]rune(description))
	return n >= RoleDescriptionMin && n <= RoleDescriptionMax
}

// Can reports whether the role grants action on category. Inactive roles
// grant nothing.
func (r *Role) Can(category, action string) bool {
	if !r.IsActive {
		return false
	}
	return r.Permissions.Grants(category, action)
}
