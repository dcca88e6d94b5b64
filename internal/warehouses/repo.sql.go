package warehouses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists warehouses in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all warehouses, or a single one when scope is set.
func (r *Repository) List(ctx context.Context, scope *int64) ([]Warehouse, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name, address, zip, city, province, country, created_at, updated_at
FROM warehouses WHERE $1::bigint IS NULL OR id = $1 ORDER BY id`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var warehouses []Warehouse
	for rows.Next() {
		var wh Warehouse
		if err := rows.Scan(&wh.ID, &wh.Code, &wh.Name, &wh.Address, &wh.Zip, &wh.City, &wh.Province, &wh.Country, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Get fetches a warehouse by id.
func (r *Repository) Get(ctx context.Context, id int64) (Warehouse, error) {
	var wh Warehouse
	err := r.pool.QueryRow(ctx, `SELECT id, code, name, address, zip, city, province, country, created_at, updated_at
FROM warehouses WHERE id = $1`, id).
		Scan(&wh.ID, &wh.Code, &wh.Name, &wh.Address, &wh.Zip, &wh.City, &wh.Province, &wh.Country, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Warehouse{}, ErrNotFound
		}
		return Warehouse{}, err
	}
	return wh, nil
}

// Insert persists a new warehouse.
func (r *Repository) Insert(ctx context.Context, wh Warehouse) (Warehouse, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO warehouses (code, name, address, zip, city, province, country, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		wh.Code, wh.Name, wh.Address, wh.Zip, wh.City, wh.Province, wh.Country, wh.CreatedAt, wh.UpdatedAt).Scan(&wh.ID)
	if err != nil {
		return Warehouse{}, err
	}
	return wh, nil
}

// Update mutates a warehouse in place.
func (r *Repository) Update(ctx context.Context, id int64, in Input) error {
	tag, err := r.pool.Exec(ctx, `UPDATE warehouses SET code = $2, name = $3, address = $4, zip = $5, city = $6, province = $7, country = $8, updated_at = NOW()
WHERE id = $1`, id, in.Code, in.Name, in.Address, in.Zip, in.City, in.Province, in.Country)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a warehouse.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
