// Package keys implements the lifecycle of API-key credentials: visibility
// filtered listing, creation, random generation, update, and permanent
// deletion, with escalation and warehouse-scoping guards.
package keys

import (
	"errors"

	"github.com/cargohub/cargohub/internal/auth"
)

var (
	// ErrNotFound covers both nonexistent ids and records hidden from the
	// caller; responses never distinguish the two.
	ErrNotFound = errors.New("keys: api key not found")
	// ErrAdminOnly rejects a non-admin touching an Admin credential.
	ErrAdminOnly = errors.New("keys: only Admin may manage Admin keys")
	// ErrTenantScope rejects key management outside the caller's warehouse.
	ErrTenantScope = errors.New("keys: key is outside the caller's warehouse scope")
	// ErrUnknownRole rejects roles outside the closed set.
	ErrUnknownRole = errors.New("keys: unknown role")
	// ErrDuplicateKey surfaces a store-level uniqueness violation on the
	// secret column.
	ErrDuplicateKey = errors.New("keys: api key already exists")
)

// CreateInput carries a caller-supplied credential.
type CreateInput struct {
	Key         string    `json:"api_key" validate:"required,min=16"`
	App         string    `json:"app" validate:"required"`
	Role        auth.Role `json:"role" validate:"required"`
	WarehouseID *int64    `json:"warehouse_id"`
}

// GenerateInput requests a credential with a randomly generated secret.
type GenerateInput struct {
	Role        auth.Role `json:"role" validate:"required"`
	App         string    `json:"app" validate:"required"`
	WarehouseID *int64    `json:"warehouse_id"`
}

// UpdateInput mutates the app tag, role, and scope. The secret is immutable.
type UpdateInput struct {
	App         string    `json:"app" validate:"required"`
	Role        auth.Role `json:"role" validate:"required"`
	WarehouseID *int64    `json:"warehouse_id"`
}

// ListParams narrows a listing to what the caller may see.
type ListParams struct {
	ExcludeAdmin bool
	WarehouseID  *int64
}
