package warehouses

import (
	"context"
	"time"

	"github.com/cargohub/cargohub/internal/auth"
)

// RepositoryPort defines data access for warehouses.
type RepositoryPort interface {
	List(ctx context.Context, scope *int64) ([]Warehouse, error)
	Get(ctx context.Context, id int64) (Warehouse, error)
	Insert(ctx context.Context, wh Warehouse) (Warehouse, error)
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

// Service handles warehouse business logic. A warehouse-scoped non-admin
// caller only ever sees and touches its own warehouse; everything else is
// indistinguishable from nonexistent.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the warehouses visible to the caller.
func (s *Service) List(ctx context.Context, caller auth.Principal) ([]Warehouse, error) {
	var scope *int64
	if !caller.Role.IsAdmin() && caller.WarehouseID != nil {
		scope = caller.WarehouseID
	}
	return s.repo.List(ctx, scope)
}

// Get fetches a single warehouse under the caller's scope.
func (s *Service) Get(ctx context.Context, caller auth.Principal, id int64) (Warehouse, error) {
	if !caller.Role.IsAdmin() && caller.WarehouseID != nil && *caller.WarehouseID != id {
		return Warehouse{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create persists a new warehouse, stamping timestamps.
func (s *Service) Create(ctx context.Context, in Input) (Warehouse, error) {
	now := time.Now().UTC()
	return s.repo.Insert(ctx, Warehouse{
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		Zip:       in.Zip,
		City:      in.City,
		Province:  in.Province,
		Country:   in.Country,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update mutates a warehouse the caller may see.
func (s *Service) Update(ctx context.Context, caller auth.Principal, id int64, in Input) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a warehouse the caller may see.
func (s *Service) Delete(ctx context.Context, caller auth.Principal, id int64) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
