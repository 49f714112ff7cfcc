// Package handler exposes HTTP handlers for the pricing API. This file
// defines the quote endpoints: given a property or room id and a date range,
// they return the per-night pricing detail and aggregate totals computed by
// the pricing core. All domain decisions (classification precedence,
// checkout exclusion, the 365-day cap) live in internal/pricing; the handler
// only moves parameters in and JSON out.
package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rentora/pricing-service/internal/pricing"
	"github.com/rentora/pricing-service/internal/queue"
	queue_publisher "github.com/rentora/pricing-service/internal/service"
)

// QuoteHandler serves property-level and room-level quote requests.
type QuoteHandler struct {
	Calc *pricing.Calculator
	// PublishEvents controls whether successful quotes emit a
	// quote.calculated event. Disabled in tests.
	PublishEvents bool
}

// NewQuoteHandler constructs a QuoteHandler and panics if the calculator is nil.
func NewQuoteHandler(calc *pricing.Calculator) *QuoteHandler {
	if calc == nil {
		panic("nil calculator passed to NewQuoteHandler")
	}
	return &QuoteHandler{Calc: calc, PublishEvents: true}
}

// PropertyQuote handles GET /v1/properties/:id/quote?start_date=&end_date=.
func (h *QuoteHandler) PropertyQuote(c echo.Context) error {
	return h.quote(c, pricing.ScopeProperty)
}

// RoomQuote handles GET /v1/rooms/:id/quote?start_date=&end_date=.
func (h *QuoteHandler) RoomQuote(c echo.Context) error {
	return h.quote(c, pricing.ScopeRoom)
}

func (h *QuoteHandler) quote(c echo.Context, scope pricing.Scope) error {
	ctx := c.Request().Context()
	result, err := h.Calc.Quote(ctx, scope, c.Param("id"), c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return writeQuoteError(c, err)
	}

	if h.PublishEvents {
		// Best effort: the publisher logs its own failures and a broker
		// outage must never fail the request.
		_ = queue_publisher.PublishQuoteCalculated(ctx, queue.QuoteCalculatedEvent{
			EventID:           uuid.NewString(),
			Scope:             string(scope),
			SubjectID:         result.SubjectID,
			SubjectName:       result.SubjectName,
			StartDate:         result.StartDate,
			EndDate:           result.EndDate,
			Nights:            result.Nights,
			BaseNights:        result.Breakdown.BaseNights,
			BestDealNights:    result.Breakdown.BestDealNights,
			PeakSeasonNights:  result.Breakdown.PeakSeasonNights,
			UnavailableNights: result.Breakdown.UnavailableNights,
			TotalCents:        result.TotalCents,
			AveragePriceCents: result.AveragePriceCents,
			CalculatedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// writeQuoteError maps a calculator failure to a JSON error response. The
// core always returns *pricing.QuoteError; anything else is treated as an
// internal fault. Causes of 5xx responses are logged with detail but never
// leaked to clients.
func writeQuoteError(c echo.Context, err error) error {
	qe, ok := err.(*pricing.QuoteError)
	if !ok {
		log.Printf("quote: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error", "code": pricing.CodeInternal})
	}
	if qe.Status >= 500 {
		log.Printf("quote: %v", qe)
	}
	body := echo.Map{"error": qe.Message, "code": qe.Code}
	if len(qe.UnavailableDates) > 0 {
		body["unavailable_dates"] = qe.UnavailableDates
	}
	return c.JSON(qe.Status, body)
}
