package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/store"
)

// ListBookings handles GET /v1/bookings and returns every booking in
// canonical order (weekday, then start time).
func (h *BookingHandler) ListBookings(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"items": h.Svc.ListBookings()})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	b, ok := h.Svc.Store.Get(idParam(c))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBooking handles POST /v1/bookings.  It answers 201 with the new
// booking, 400 on validation errors and 409 with the conflicting booking
// when the room is already taken.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var body bookingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in := body.applyTo(model.BookingInput{})
	return h.respond(c, http.StatusCreated, h.Svc.AddBooking(c.Request().Context(), in))
}

// UpdateBooking handles PUT /v1/bookings/:id (full replacement) and PATCH
// /v1/bookings/:id (only the fields present in the body change).  The id
// in the path wins over any id in the body.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id := idParam(c)
	cur, ok := h.Svc.Store.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Booking not found."})
	}
	// Body only: the path id must not leak into the form fields.
	var body bookingBody
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	base := cur.Input()
	if c.Request().Method == http.MethodPut {
		base = model.BookingInput{}
	}
	next := body.applyTo(base).WithID(id)
	return h.respond(c, http.StatusOK, h.Svc.UpdateBooking(c.Request().Context(), next))
}

// DeleteBooking handles DELETE /v1/bookings/:id.  The caller must confirm
// the deletion with ?confirm=true (or an X-Confirm-Delete: true header);
// without it the request is refused with 428 and nothing changes.  Deleting
// an unknown id succeeds with 204.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	if !confirmed(c) {
		return c.JSON(http.StatusPreconditionRequired, map[string]string{"error": "deletion must be confirmed"})
	}
	if err := h.Svc.DeleteBooking(c.Request().Context(), idParam(c)); err != nil {
		h.Log.Error("delete booking failed", zap.String("id", idParam(c)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete booking"})
	}
	return c.NoContent(http.StatusNoContent)
}

func confirmed(c echo.Context) bool {
	return c.QueryParam("confirm") == "true" || c.Request().Header.Get("X-Confirm-Delete") == "true"
}

// CheckBooking handles POST /v1/bookings/check.  It runs the conflict
// checker for a prospective booking without storing anything.  Pass
// excludeId when checking an edit.
func (h *BookingHandler) CheckBooking(c echo.Context) error {
	var body struct {
		bookingBody
		ExcludeID string `json:"excludeId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	candidate := model.NormalizeInput(body.applyTo(model.BookingInput{})).WithID("")
	existing, conflict := h.Svc.CheckConflict(candidate, body.ExcludeID)
	resp := map[string]any{"conflict": conflict}
	if conflict {
		resp["conflictingBooking"] = existing
		resp["message"] = store.MsgConflict
	}
	return c.JSON(http.StatusOK, resp)
}
