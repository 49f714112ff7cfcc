// This file defines handlers for the public browsing API. These routes let
// clients list properties and rooms before requesting a quote. Sensitive or
// internal fields (timestamps, override records) are filtered from
// responses.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentora/pricing-service/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	PropertyRepo *repository.PropertyRepo // provides access to property data
	RoomRepo     *repository.RoomRepo     // provides access to room data
}

// PublicProperty represents a property exposed via the public API. It
// contains only safe fields.
type PublicProperty struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	BasePriceCents int64  `json:"base_price_cents"`
}

// PublicRoom represents a room exposed via the public API.
type PublicRoom struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	MaxGuests      uint32 `json:"max_guests"`
	BasePriceCents int64  `json:"base_price_cents"`
}

// GetProperties returns the list of all properties. Response JSON contains
// an "items" array of PublicProperty.
func (h *PublicHandler) GetProperties(c echo.Context) error {
	ctx := c.Request().Context()
	properties, err := h.PropertyRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(properties))
	for _, p := range properties {
		out = append(out, PublicProperty{ID: p.ID, Name: p.Name, City: p.City, BasePriceCents: p.BasePriceCents})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetProperty returns the details of a single property.
func (h *PublicHandler) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, PublicProperty{ID: p.ID, Name: p.Name, City: p.City, BasePriceCents: p.BasePriceCents})
}

// GetRoomsByProperty lists rooms of a property. It validates the property
// exists, then returns only non-sensitive fields.
func (h *PublicHandler) GetRoomsByProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	// ensure property exists
	if _, err := h.PropertyRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.ListByProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRoom, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, PublicRoom{ID: rm.ID, Name: rm.Name, MaxGuests: rm.MaxGuests, BasePriceCents: rm.BasePriceCents})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
