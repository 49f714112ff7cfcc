// This file defines the rate override tables and their repository. Three
// kinds of override exist: sold-out dates (explicit blocks), best deals
// (explicit discounted price points) and peak season rates (date windows
// raising the base price by a percentage or a flat amount). A row with
// room_id NULL applies property-wide; a non-NULL room_id scopes the row to
// one room.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/rentora/pricing-service/internal/pricing"
)

// BestDeal mirrors a row of the best_deals table.
type BestDeal struct {
	ID         uint64  `json:"id"`          // best_deals.id
	PropertyID uint64  `json:"property_id"` // best_deals.property_id
	RoomID     *uint64 `json:"room_id"`     // best_deals.room_id (NULL = property-wide)
	Date       string  `json:"date"`        // best_deals.date ("YYYY-MM-DD")
	PriceCents int64   `json:"price_cents"` // best_deals.price_cents
}

// PeakSeasonRate mirrors a row of the peak_season_rates table. Exactly one
// of PercentageIncrease / PriceIncreaseCents is non-NULL; the handler
// enforces that at creation time.
type PeakSeasonRate struct {
	ID                 uint64   `json:"id"`                   // peak_season_rates.id
	PropertyID         uint64   `json:"property_id"`          // peak_season_rates.property_id
	RoomID             *uint64  `json:"room_id"`              // peak_season_rates.room_id (NULL = property-wide)
	StartDate          string   `json:"start_date"`           // peak_season_rates.start_date (inclusive)
	EndDate            string   `json:"end_date"`             // peak_season_rates.end_date (inclusive)
	PercentageIncrease *float64 `json:"percentage_increase"`  // peak_season_rates.percentage_increase
	PriceIncreaseCents *int64   `json:"price_increase_cents"` // peak_season_rates.price_increase_cents
	IsActive           bool     `json:"is_active"`            // peak_season_rates.is_active
}

// RateRepo manages persistence for all three override kinds. Reads are
// batched per calculation call: one query per table over the requested
// window, never one per night.
type RateRepo struct {
	db *sql.DB
}

// NewRateRepo constructs a RateRepo with the given DB handle.
func NewRateRepo(db *sql.DB) *RateRepo {
	return &RateRepo{db: db}
}

// SoldOutDates returns the blocked dates for the subject within
// [start, end) as a set. roomID nil selects property-wide rows only; a
// non-nil roomID selects rows for that room only.
func (r *RateRepo) SoldOutDates(ctx context.Context, propertyID uint64, roomID *uint64, start, end string) (map[string]bool, error) {
	const qProperty = `SELECT DATE_FORMAT(date, '%Y-%m-%d') FROM sold_out_dates
                       WHERE property_id = ? AND room_id IS NULL AND is_available = 0 AND date >= ? AND date < ?`
	const qRoom = `SELECT DATE_FORMAT(date, '%Y-%m-%d') FROM sold_out_dates
                   WHERE property_id = ? AND room_id = ? AND is_available = 0 AND date >= ? AND date < ?`
	var rows *sql.Rows
	var err error
	if roomID == nil {
		rows, err = r.db.QueryContext(ctx, qProperty, propertyID, start, end)
	} else {
		rows, err = r.db.QueryContext(ctx, qRoom, propertyID, *roomID, start, end)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	soldOut := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		soldOut[date] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return soldOut, nil
}

// BestDeals returns the discounted price per date for the subject within
// [start, end). The strictly-below-base filter is applied by the calculator
// after load, because the applicable base price belongs to the request, not
// to this table.
func (r *RateRepo) BestDeals(ctx context.Context, propertyID uint64, roomID *uint64, start, end string) (map[string]int64, error) {
	const qProperty = `SELECT DATE_FORMAT(date, '%Y-%m-%d'), price_cents FROM best_deals
                       WHERE property_id = ? AND room_id IS NULL AND date >= ? AND date < ?`
	const qRoom = `SELECT DATE_FORMAT(date, '%Y-%m-%d'), price_cents FROM best_deals
                   WHERE property_id = ? AND room_id = ? AND date >= ? AND date < ?`
	var rows *sql.Rows
	var err error
	if roomID == nil {
		rows, err = r.db.QueryContext(ctx, qProperty, propertyID, start, end)
	} else {
		rows, err = r.db.QueryContext(ctx, qRoom, propertyID, *roomID, start, end)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	deals := make(map[string]int64)
	for rows.Next() {
		var date string
		var price int64
		if err := rows.Scan(&date, &price); err != nil {
			return nil, err
		}
		deals[date] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deals, nil
}

// PeakWindows returns the active peak season windows overlapping [start, end).
// Room-scoped lookups see both room-specific and property-wide windows, so
// the classifier can apply its room-beats-property tie-break; property-scoped
// lookups see property-wide windows only.
func (r *RateRepo) PeakWindows(ctx context.Context, propertyID uint64, roomID *uint64, start, end string) ([]pricing.PeakWindow, error) {
	const qProperty = `SELECT room_id, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
                              percentage_increase, price_increase_cents
                       FROM peak_season_rates
                       WHERE property_id = ? AND room_id IS NULL AND is_active = 1
                         AND start_date < ? AND end_date >= ?`
	const qRoom = `SELECT room_id, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
                          percentage_increase, price_increase_cents
                   FROM peak_season_rates
                   WHERE property_id = ? AND (room_id = ? OR room_id IS NULL) AND is_active = 1
                     AND start_date < ? AND end_date >= ?`
	var rows *sql.Rows
	var err error
	if roomID == nil {
		rows, err = r.db.QueryContext(ctx, qProperty, propertyID, end, start)
	} else {
		rows, err = r.db.QueryContext(ctx, qRoom, propertyID, *roomID, end, start)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var windows []pricing.PeakWindow
	for rows.Next() {
		var w pricing.PeakWindow
		var room sql.NullInt64
		var pct sql.NullFloat64
		var flat sql.NullInt64
		if err := rows.Scan(&room, &w.StartDate, &w.EndDate, &pct, &flat); err != nil {
			return nil, err
		}
		if room.Valid {
			id := uint64(room.Int64)
			w.RoomID = &id
		}
		if pct.Valid {
			v := pct.Float64
			w.PercentIncrease = &v
		}
		if flat.Valid {
			v := flat.Int64
			w.PriceIncreaseCents = &v
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return windows, nil
}

// CreateBestDeal inserts a new best deal and assigns the generated ID back
// to the struct. A unique key on (property_id, room_id, date) means a second
// deal for the same date surfaces as ErrConflict.
func (r *RateRepo) CreateBestDeal(ctx context.Context, d *BestDeal) error {
	const q = `INSERT INTO best_deals (property_id, room_id, date, price_cents) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.PropertyID, d.RoomID, d.Date, d.PriceCents)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// CreatePeakSeason inserts a new peak season window and assigns the
// generated ID back to the struct. Overlapping windows are allowed; the
// classifier's tie-break decides which one wins per night.
func (r *RateRepo) CreatePeakSeason(ctx context.Context, p *PeakSeasonRate) error {
	const q = `INSERT INTO peak_season_rates (property_id, room_id, start_date, end_date, percentage_increase, price_increase_cents, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.PropertyID, p.RoomID, p.StartDate, p.EndDate, p.PercentageIncrease, p.PriceIncreaseCents, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// SetSoldOut marks a date blocked or available again. The upsert keeps the
// operation idempotent: repeating the same call leaves one row per
// (property, room, date) with the latest availability flag.
func (r *RateRepo) SetSoldOut(ctx context.Context, propertyID uint64, roomID *uint64, date string, available bool) error {
	const q = `INSERT INTO sold_out_dates (property_id, room_id, date, is_available)
               VALUES (?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE is_available = VALUES(is_available)`
	_, err := r.db.ExecContext(ctx, q, propertyID, roomID, date, available)
	return err
}

// isDuplicateEntry reports whether err is MySQL error 1062 (duplicate key).
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
