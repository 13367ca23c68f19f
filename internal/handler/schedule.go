package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/schedule"
)

// ListRooms handles GET /v1/rooms.
func (h *BookingHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"items": h.Svc.Store.Rooms()})
}

// ListDays handles GET /v1/days and returns the week in schedule order.
func (h *BookingHandler) ListDays(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"items": model.Week()})
}

type dayTable struct {
	Day  model.Day      `json:"day"`
	Rows []schedule.Row `json:"rows"`
}

// GetSchedule handles GET /v1/schedule.  The grid is rebuilt from the
// current bookings on every request.  ?day=Monday limits the response to
// one day.  Continuation cells are omitted from the rows; each anchor's
// rowSpan covers them.
func (h *BookingHandler) GetSchedule(c echo.Context) error {
	g := h.Svc.BuildGrid()
	days := g.Days()
	if raw := c.QueryParam("day"); raw != "" {
		d, ok := model.ParseDay(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid day"})
		}
		days = []model.Day{d}
	}
	tables := make([]dayTable, 0, len(days))
	for _, d := range days {
		tables = append(tables, dayTable{Day: d, Rows: g.Rows(d)})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"config": g.Config(),
		"slots":  g.Slots(),
		"rooms":  g.Rooms(),
		"days":   tables,
		"empty":  len(h.Svc.ListBookings()) == 0,
	})
}
