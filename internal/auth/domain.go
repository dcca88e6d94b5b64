// Package auth implements API-key identity resolution and the role/resource
// permission matrix guarding every inbound request.
package auth

import (
	"net/http"
	"strings"
	"time"
)

// Role names a category of API credential. The set is closed: the key
// service refuses to persist anything outside it.
type Role string

// Known roles. RoleAdmin bypasses the permission matrix entirely.
const (
	RoleAdmin            Role = "Admin"
	RoleWarehouseManager Role = "Warehouse_Manager"
	RoleInventoryManager Role = "Inventory_Manager"
	RoleFloorManager     Role = "Floor_Manager"
	RoleOperative        Role = "Operative"
	RoleSupervisor       Role = "Supervisor"
	RoleAnalyst          Role = "Analyst"
	RoleLogistics        Role = "Logistics"
	RoleSales            Role = "Sales"
)

// Roles lists every assignable role.
func Roles() []Role {
	return []Role{
		RoleAdmin,
		RoleWarehouseManager,
		RoleInventoryManager,
		RoleFloorManager,
		RoleOperative,
		RoleSupervisor,
		RoleAnalyst,
		RoleLogistics,
		RoleSales,
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries the universal bypass.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Action is one of the four permission columns of the matrix.
type Action int

const (
	ActionView Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// ActionFromMethod maps an HTTP method onto a permission action. The
// comparison is case-insensitive; any unmapped verb reports false and
// must be treated as a denial.
func ActionFromMethod(method string) (Action, bool) {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return ActionView, true
	case http.MethodPost:
		return ActionCreate, true
	case http.MethodPut:
		return ActionUpdate, true
	case http.MethodDelete:
		return ActionDelete, true
	default:
		return 0, false
	}
}

// Principal is an API-key credential: the caller identity every request
// resolves to. WarehouseID narrows a non-admin principal to a single
// warehouse; nil means unscoped.
type Principal struct {
	ID          int64     `json:"id"`
	Key         string    `json:"api_key"`
	App         string    `json:"app"`
	Role        Role      `json:"role"`
	WarehouseID *int64    `json:"warehouse_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionRule is one stored row of the (role, resource) matrix.
// Absence of a row means no access of any kind.
type PermissionRule struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Resource  string    `json:"resource"`
	CanView   bool      `json:"can_view"`
	CanCreate bool      `json:"can_create"`
	CanUpdate bool      `json:"can_update"`
	CanDelete bool      `json:"can_delete"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Allows reports whether the rule grants the given action.
func (p PermissionRule) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionUpdate:
		return p.CanUpdate
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}
