// Package warehouses is the gate's representative downstream consumer: plain
// resource CRUD that trusts the gate for identity but still re-checks the
// permission matrix before acting.
package warehouses

import (
	"errors"
	"time"
)

// ErrNotFound indicates a warehouse that does not exist or is hidden from
// the caller by warehouse scoping.
var ErrNotFound = errors.New("warehouses: warehouse not found")

// Warehouse is a physical storage site.
type Warehouse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Zip       string    `json:"zip"`
	City      string    `json:"city"`
	Province  string    `json:"province"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries a create or update payload.
type Input struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Zip      string `json:"zip"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
}
