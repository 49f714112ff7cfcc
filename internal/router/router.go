package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/rentora/pricing-service/internal/handler" // handlers implementing the endpoints
)

// RegisterRoutes registers routes that carry no extra middleware on the
// provided Echo instance. Currently it exposes only a health check, which
// load balancers and monitoring systems use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints. The
// provided PublicHandler returns sanitized data for properties and rooms so
// clients can pick a subject before requesting a quote.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Expose list of all properties
	e.GET("/v1/properties", p.GetProperties)
	// Property details by id
	e.GET("/v1/properties/:id", p.GetProperty)
	// List rooms of a specific property
	e.GET("/v1/properties/:id/rooms", p.GetRoomsByProperty)
}

// RegisterQuotes registers the two quote endpoints. They share the supplied
// middleware chain (response cache and rate limiter); caching quote
// responses is safe because a quote is a pure function of its route, query
// parameters and the override data, and the cache sits entirely outside the
// calculation core.
func RegisterQuotes(e *echo.Echo, q *handler.QuoteHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Property-level quote: every night priced from the property-wide rate
	g.GET("/properties/:id/quote", q.PropertyQuote)
	// Room-level quote: room rate plus room-specific and property-wide overrides
	g.GET("/rooms/:id/quote", q.RoomQuote)
}

// RegisterRates registers the rate management endpoints used to create
// best deals and peak season windows and to mark dates sold out.
func RegisterRates(e *echo.Echo, r *handler.RateHandler) {
	g := e.Group("/v1/rates")
	g.POST("/best-deals", r.CreateBestDeal)
	g.POST("/peak-seasons", r.CreatePeakSeason)
	g.POST("/sold-out", r.SetSoldOut)
}
