// Package repository contains data access logic for the pricing service.
// This file defines the Property model and its repository. A Property is the
// top-level rentable subject; its stored base price is the fallback nightly
// rate whenever no override applies.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"time"         // time for DATETIME columns (parseTime=true)
)

// Property mirrors a row of the properties table. BasePriceCents is the
// property-wide nightly rate in cents; per-room rates live on rooms.
type Property struct {
	ID             uint64    `json:"id"`               // properties.id
	Name           string    `json:"name"`             // properties.name
	City           string    `json:"city"`             // properties.city
	BasePriceCents int64     `json:"base_price_cents"` // properties.base_price_cents
	CreatedAt      time.Time `json:"created_at"`       // properties.created_at
	UpdatedAt      time.Time `json:"updated_at"`       // properties.updated_at
}

// ErrPropertyNotFound indicates that a property was not located in the DB.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepo manages persistence for properties.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo constructs a PropertyRepo with the given DB handle.
func NewPropertyRepo(db *sql.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

// GetByID retrieves a property by its ID. It returns ErrPropertyNotFound
// when there is no matching row.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*Property, error) {
	const q = `SELECT id, name, city, base_price_cents, created_at, updated_at FROM properties WHERE id = ?`
	var p Property
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.City, &p.BasePriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns every property ordered by name. When no properties exist
// it returns an empty slice and nil error.
func (r *PropertyRepo) ListAll(ctx context.Context) ([]Property, error) {
	const q = `SELECT id, name, city, base_price_cents, created_at, updated_at FROM properties ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.BasePriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
