package handler // handler defines http handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentora/pricing-service/internal/pricing"
	"github.com/rentora/pricing-service/internal/repository"
)

// RateHandler bundles repositories for managing rate overrides: best deals,
// peak season windows and sold-out marks. These writes are the data-entry
// side of the quote calculation — notably, the rule that a best deal must be
// strictly below the applicable base price is enforced here, so the
// calculator itself can stay total and silently skip any entry that fails
// the check later (e.g. after a base price raise).
type RateHandler struct {
	PropertyRepo *repository.PropertyRepo // PropertyRepo provides property persistence
	RoomRepo     *repository.RoomRepo     // RoomRepo provides room persistence
	RateRepo     *repository.RateRepo     // RateRepo provides override persistence
}

// NewRateHandler constructs a new RateHandler and panics if any dependency is nil.
func NewRateHandler(propertyRepo *repository.PropertyRepo, roomRepo *repository.RoomRepo, rateRepo *repository.RateRepo) *RateHandler {
	if propertyRepo == nil || roomRepo == nil || rateRepo == nil {
		panic("nil repository passed to NewRateHandler")
	}
	return &RateHandler{PropertyRepo: propertyRepo, RoomRepo: roomRepo, RateRepo: rateRepo}
}

// resolveBasePrice verifies the targeted scope exists and returns the
// applicable base price: the room's own rate for room-scoped overrides, the
// property-wide rate otherwise. A room belonging to a different property is
// treated as not found rather than leaked.
func (h *RateHandler) resolveBasePrice(c echo.Context, propertyID uint64, roomID *uint64) (int64, bool) {
	ctx := c.Request().Context()
	p, err := h.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if err == repository.ErrPropertyNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify property"})
		}
		return 0, false
	}
	if roomID == nil {
		return p.BasePriceCents, true
	}
	rm, err := h.RoomRepo.GetByID(ctx, *roomID)
	if err != nil || rm.PropertyID != propertyID {
		if err != nil && err != repository.ErrRoomNotFound {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify room"})
			return 0, false
		}
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		return 0, false
	}
	return rm.BasePriceCents, true
}

// CreateBestDeal handles POST /v1/rates/best-deals. The deal price must be
// strictly below the applicable base price; equal-or-above prices are
// rejected so that "best deal" always means a discount.
func (h *RateHandler) CreateBestDeal(c echo.Context) error {
	var body struct {
		PropertyID uint64  `json:"property_id"` // required: property the deal belongs to
		RoomID     *uint64 `json:"room_id"`     // optional: limit the deal to one room
		Date       string  `json:"date"`        // night the discounted price applies to
		PriceCents int64   `json:"price_cents"` // discounted nightly price
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id is required"})
	}
	if !pricing.IsValidDate(body.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be a valid YYYY-MM-DD date"})
	}
	if body.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
	}
	base, ok := h.resolveBasePrice(c, body.PropertyID, body.RoomID)
	if !ok {
		return nil
	}
	if body.PriceCents >= base {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be strictly below the base price"})
	}
	deal := &repository.BestDeal{
		PropertyID: body.PropertyID,
		RoomID:     body.RoomID,
		Date:       body.Date,
		PriceCents: body.PriceCents,
	}
	if err := h.RateRepo.CreateBestDeal(c.Request().Context(), deal); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a best deal already exists for this date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create best deal"})
	}
	return c.JSON(http.StatusCreated, deal)
}

// CreatePeakSeason handles POST /v1/rates/peak-seasons. Exactly one of
// percentage_increase / price_increase_cents must be provided. Overlapping
// windows are accepted; which one wins per night is decided at quote time.
func (h *RateHandler) CreatePeakSeason(c echo.Context) error {
	var body struct {
		PropertyID         uint64   `json:"property_id"`
		RoomID             *uint64  `json:"room_id"`
		StartDate          string   `json:"start_date"`
		EndDate            string   `json:"end_date"`
		PercentageIncrease *float64 `json:"percentage_increase"`
		PriceIncreaseCents *int64   `json:"price_increase_cents"`
		IsActive           *bool    `json:"is_active"` // defaults to true
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id is required"})
	}
	if !pricing.IsValidDate(body.StartDate) || !pricing.IsValidDate(body.EndDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date and end_date must be valid YYYY-MM-DD dates"})
	}
	if body.StartDate > body.EndDate {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not be before start_date"})
	}
	if (body.PercentageIncrease == nil) == (body.PriceIncreaseCents == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of percentage_increase and price_increase_cents is required"})
	}
	if body.PercentageIncrease != nil && *body.PercentageIncrease <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "percentage_increase must be positive"})
	}
	if body.PriceIncreaseCents != nil && *body.PriceIncreaseCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_increase_cents must be positive"})
	}
	if _, ok := h.resolveBasePrice(c, body.PropertyID, body.RoomID); !ok {
		return nil
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	rate := &repository.PeakSeasonRate{
		PropertyID:         body.PropertyID,
		RoomID:             body.RoomID,
		StartDate:          body.StartDate,
		EndDate:            body.EndDate,
		PercentageIncrease: body.PercentageIncrease,
		PriceIncreaseCents: body.PriceIncreaseCents,
		IsActive:           active,
	}
	if err := h.RateRepo.CreatePeakSeason(c.Request().Context(), rate); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create peak season rate"})
	}
	return c.JSON(http.StatusCreated, rate)
}

// SetSoldOut handles POST /v1/rates/sold-out. It marks a date blocked, or
// available again when "available" is true. The write is an idempotent
// upsert, so repeating a call is safe.
func (h *RateHandler) SetSoldOut(c echo.Context) error {
	var body struct {
		PropertyID uint64  `json:"property_id"`
		RoomID     *uint64 `json:"room_id"`
		Date       string  `json:"date"`
		Available  *bool   `json:"available"` // defaults to false (blocked)
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id is required"})
	}
	if !pricing.IsValidDate(body.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be a valid YYYY-MM-DD date"})
	}
	if _, ok := h.resolveBasePrice(c, body.PropertyID, body.RoomID); !ok {
		return nil
	}
	available := false
	if body.Available != nil {
		available = *body.Available
	}
	if err := h.RateRepo.SetSoldOut(c.Request().Context(), body.PropertyID, body.RoomID, body.Date, available); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"property_id": body.PropertyID,
		"room_id":     body.RoomID,
		"date":        body.Date,
		"available":   available,
	})
}
