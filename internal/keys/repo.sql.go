package keys

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cargohub/cargohub/internal/auth"
)

// Repository persists API-key credentials in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns credentials matching the visibility parameters, ordered by
// role then warehouse for a stable presentation.
func (r *Repository) List(ctx context.Context, params ListParams) ([]auth.Principal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, api_key, app, role, warehouse_id, created_at, updated_at
FROM api_keys
WHERE ($1::boolean IS FALSE OR role <> $2)
  AND ($3::bigint IS NULL OR warehouse_id = $3)
ORDER BY role, warehouse_id NULLS FIRST, id`,
		params.ExcludeAdmin, auth.RoleAdmin, params.WarehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var principals []auth.Principal
	for rows.Next() {
		var p auth.Principal
		if err := rows.Scan(&p.ID, &p.Key, &p.App, &p.Role, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		principals = append(principals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return principals, nil
}

// Get fetches a credential by id.
func (r *Repository) Get(ctx context.Context, id int64) (auth.Principal, error) {
	var p auth.Principal
	err := r.pool.QueryRow(ctx, `SELECT id, api_key, app, role, warehouse_id, created_at, updated_at
FROM api_keys WHERE id = $1`, id).
		Scan(&p.ID, &p.Key, &p.App, &p.Role, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Principal{}, ErrNotFound
		}
		return auth.Principal{}, err
	}
	return p, nil
}

// Insert persists a new credential. The unique index on api_key is the sole
// backstop against secret collisions; a violation maps to ErrDuplicateKey.
func (r *Repository) Insert(ctx context.Context, p auth.Principal) (auth.Principal, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO api_keys (api_key, app, role, warehouse_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Key, p.App, p.Role, p.WarehouseID, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.Principal{}, ErrDuplicateKey
		}
		return auth.Principal{}, err
	}
	return p, nil
}

// Update mutates app, role, and warehouse scope in place.
func (r *Repository) Update(ctx context.Context, id int64, app string, role auth.Role, warehouseID *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE api_keys SET app = $2, role = $3, warehouse_id = $4, updated_at = NOW()
WHERE id = $1`, id, app, role, warehouseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a credential outright. No archive copy is retained.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
