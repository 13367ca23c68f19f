package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/handler"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBookings registers the booking API under /v1.  Reads go through
// the optional cache middleware; every route goes through mws first.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, cache echo.MiddlewareFunc, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// ---- Reference data ----
	g.GET("/rooms", h.ListRooms)
	g.GET("/days", h.ListDays)

	// ---- Bookings ----
	g.GET("/bookings", h.ListBookings, cache)
	g.POST("/bookings", h.CreateBooking)
	g.POST("/bookings/check", h.CheckBooking)
	g.GET("/bookings/:id", h.GetBooking, cache)
	g.PUT("/bookings/:id", h.UpdateBooking)
	g.PATCH("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id", h.DeleteBooking) // requires ?confirm=true

	// ---- Weekly grid ----
	g.GET("/schedule", h.GetSchedule, cache)
}
