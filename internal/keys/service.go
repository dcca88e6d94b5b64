package keys

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/cargohub/cargohub/internal/auth"
)

// secretBytes is the entropy of generated secrets: 32 bytes, 256 bits.
const secretBytes = 32

// RepositoryPort defines the persistence operations the service needs.
type RepositoryPort interface {
	List(ctx context.Context, params ListParams) ([]auth.Principal, error)
	Get(ctx context.Context, id int64) (auth.Principal, error)
	Insert(ctx context.Context, p auth.Principal) (auth.Principal, error)
	Update(ctx context.Context, id int64, app string, role auth.Role, warehouseID *int64) error
	Delete(ctx context.Context, id int64) error
}

// Service owns the credential lifecycle. Escalation and warehouse-scoping
// guards live here; callers only decide whether the request may reach the
// service at all.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListVisible returns the credentials the caller may see. Non-admins never
// see Admin keys; warehouse-scoped callers see only their own warehouse.
func (s *Service) ListVisible(ctx context.Context, caller auth.Principal) ([]auth.Principal, error) {
	params := ListParams{}
	if !caller.Role.IsAdmin() {
		params.ExcludeAdmin = true
		if caller.WarehouseID != nil {
			params.WarehouseID = caller.WarehouseID
		}
	}
	return s.repo.List(ctx, params)
}

// GetVisible fetches a single credential under the same visibility filter.
// A key that exists but is hidden from the caller reports ErrNotFound.
func (s *Service) GetVisible(ctx context.Context, caller auth.Principal, id int64) (auth.Principal, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return auth.Principal{}, err
	}
	if !visibleTo(caller, p) {
		return auth.Principal{}, ErrNotFound
	}
	return p, nil
}

// Create persists a caller-supplied credential, stamping timestamps.
func (s *Service) Create(ctx context.Context, caller auth.Principal, in CreateInput) (auth.Principal, error) {
	if err := s.guard(caller, in.Role, in.WarehouseID); err != nil {
		return auth.Principal{}, err
	}
	if !in.Role.Valid() {
		return auth.Principal{}, ErrUnknownRole
	}
	now := time.Now().UTC()
	return s.repo.Insert(ctx, auth.Principal{
		Key:         in.Key,
		App:         in.App,
		Role:        in.Role,
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Generate persists a credential with a fresh random secret. No pre-insert
// uniqueness probe is made; the store's unique index is the backstop and a
// collision surfaces as ErrDuplicateKey.
func (s *Service) Generate(ctx context.Context, caller auth.Principal, in GenerateInput) (auth.Principal, error) {
	if err := s.guard(caller, in.Role, in.WarehouseID); err != nil {
		return auth.Principal{}, err
	}
	if !in.Role.Valid() {
		return auth.Principal{}, ErrUnknownRole
	}
	secret, err := newSecret()
	if err != nil {
		return auth.Principal{}, err
	}
	now := time.Now().UTC()
	return s.repo.Insert(ctx, auth.Principal{
		Key:         secret,
		App:         in.App,
		Role:        in.Role,
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update mutates an existing credential. Guards are evaluated against the
// stored record first, so an update cannot silently promote a key to Admin
// or move it across warehouses.
func (s *Service) Update(ctx context.Context, caller auth.Principal, id int64, in UpdateInput) error {
	existing, err := s.GetVisible(ctx, caller, id)
	if err != nil {
		return err
	}
	if !caller.Role.IsAdmin() {
		if existing.Role.IsAdmin() {
			return ErrAdminOnly
		}
		if !sameWarehouse(caller.WarehouseID, existing.WarehouseID) {
			return ErrTenantScope
		}
	}
	if err := s.guard(caller, in.Role, in.WarehouseID); err != nil {
		return err
	}
	if !in.Role.Valid() {
		return ErrUnknownRole
	}
	return s.repo.Update(ctx, id, in.App, in.Role, in.WarehouseID)
}

// Delete removes a credential permanently. Unlike other entities in the
// system there is no archival.
func (s *Service) Delete(ctx context.Context, caller auth.Principal, id int64) error {
	existing, err := s.GetVisible(ctx, caller, id)
	if err != nil {
		return err
	}
	if !caller.Role.IsAdmin() {
		if existing.Role.IsAdmin() {
			return ErrAdminOnly
		}
		if !sameWarehouse(caller.WarehouseID, existing.WarehouseID) {
			return ErrTenantScope
		}
	}
	return s.repo.Delete(ctx, id)
}

// guard rejects privilege escalation and cross-warehouse key management.
func (s *Service) guard(caller auth.Principal, role auth.Role, warehouseID *int64) error {
	if caller.Role.IsAdmin() {
		return nil
	}
	if role.IsAdmin() {
		return ErrAdminOnly
	}
	if !sameWarehouse(caller.WarehouseID, warehouseID) {
		return ErrTenantScope
	}
	return nil
}

// visibleTo mirrors the ListVisible filter for single-record reads: Admin
// keys are hidden from non-admins, and warehouse-scoped callers see only
// their own warehouse.
func visibleTo(caller, p auth.Principal) bool {
	if caller.Role.IsAdmin() {
		return true
	}
	if p.Role.IsAdmin() {
		return false
	}
	if caller.WarehouseID != nil {
		return p.WarehouseID != nil && *p.WarehouseID == *caller.WarehouseID
	}
	return true
}

func sameWarehouse(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// newSecret returns a fresh 256-bit secret encoded as base64.
func newSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("keys: generate secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
