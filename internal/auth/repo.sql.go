package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that no matching credential or rule exists.
var ErrNotFound = errors.New("auth: not found")

// Repository reads credentials and permission rows from PostgreSQL. Every
// lookup hits current state; nothing is cached.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByKey returns the principal owning the presented secret. The lookup is
// exact string equality against the unique api_key column.
func (r *Repository) FindByKey(ctx context.Context, key string) (Principal, error) {
	var p Principal
	err := r.pool.QueryRow(ctx, `SELECT id, api_key, app, role, warehouse_id, created_at, updated_at
FROM api_keys WHERE api_key = $1`, key).
		Scan(&p.ID, &p.Key, &p.App, &p.Role, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Principal{}, ErrNotFound
		}
		return Principal{}, err
	}
	return p, nil
}

// GetRule fetches the matrix row for a (role, resource) pair.
func (r *Repository) GetRule(ctx context.Context, role Role, resource string) (PermissionRule, error) {
	var rule PermissionRule
	err := r.pool.QueryRow(ctx, `SELECT id, role, resource, can_view, can_create, can_update, can_delete, created_at, updated_at
FROM role_permissions WHERE role = $1 AND resource = $2`, role, resource).
		Scan(&rule.ID, &rule.Role, &rule.Resource, &rule.CanView, &rule.CanCreate, &rule.CanUpdate, &rule.CanDelete, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PermissionRule{}, ErrNotFound
		}
		return PermissionRule{}, err
	}
	return rule, nil
}
