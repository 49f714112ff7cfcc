package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Room mirrors a row of the rooms table. Each room belongs to a property
// and carries its own base nightly rate, which takes the place of the
// property-wide rate for room-level quotes.
type Room struct {
	ID             uint64    `json:"id"`               // rooms.id
	PropertyID     uint64    `json:"property_id"`      // rooms.property_id
	Name           string    `json:"name"`             // rooms.name
	MaxGuests      uint32    `json:"max_guests"`       // rooms.max_guests
	BasePriceCents int64     `json:"base_price_cents"` // rooms.base_price_cents
	CreatedAt      time.Time `json:"created_at"`       // rooms.created_at
	UpdatedAt      time.Time `json:"updated_at"`       // rooms.updated_at
}

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo manages persistence for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetByID retrieves a room by its ID. It returns ErrRoomNotFound when there
// is no matching row.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*Room, error) {
	const q = `SELECT id, property_id, name, max_guests, base_price_cents, created_at, updated_at FROM rooms WHERE id = ?`
	var rm Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.PropertyID, &rm.Name, &rm.MaxGuests, &rm.BasePriceCents, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByProperty returns all rooms of a property ordered by name. When the
// property has no rooms it returns an empty slice and nil error.
func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]Room, error) {
	const q = `SELECT id, property_id, name, max_guests, base_price_cents, created_at, updated_at
               FROM rooms
               WHERE property_id = ?
               ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.PropertyID, &rm.Name, &rm.MaxGuests, &rm.BasePriceCents, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
