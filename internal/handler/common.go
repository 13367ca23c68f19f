package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/service"
	"github.com/iliyamo/room-booking/internal/store"
)

// BookingHandler serves the booking, room and schedule endpoints.
type BookingHandler struct {
	Svc *service.Bookings
	Log *zap.Logger
}

// NewBookingHandler constructs a BookingHandler and panics if svc is nil.
// A nil log discards output.
func NewBookingHandler(svc *service.Bookings, log *zap.Logger) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{Svc: svc, Log: log}
}

// bookingBody is the JSON form payload.  Pointers let PATCH tell absent
// fields from zero values.
type bookingBody struct {
	GroupName      *string `json:"groupName"`
	InstructorName *string `json:"instructorName"`
	Day            *string `json:"day"`
	TimeFrom       *string `json:"timeFrom"`
	TimeTo         *string `json:"timeTo"`
	RoomID         *string `json:"roomId"`
	StudentsCount  *int    `json:"studentsCount"`
	Status         *string `json:"status"`
}

// applyTo overlays the present fields onto in.
func (b bookingBody) applyTo(in model.BookingInput) model.BookingInput {
	if b.GroupName != nil {
		in.GroupName = *b.GroupName
	}
	if b.InstructorName != nil {
		in.InstructorName = *b.InstructorName
	}
	if b.Day != nil {
		in.Day = model.Day(*b.Day)
	}
	if b.TimeFrom != nil {
		in.TimeFrom = *b.TimeFrom
	}
	if b.TimeTo != nil {
		in.TimeTo = *b.TimeTo
	}
	if b.RoomID != nil {
		in.RoomID = *b.RoomID
	}
	if b.StudentsCount != nil {
		in.StudentsCount = *b.StudentsCount
	}
	if b.Status != nil {
		in.Status = model.Status(*b.Status)
	}
	return in
}

// result is the response body of add and update.
type result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Booking *model.Booking `json:"booking,omitempty"`
	Field   string         `json:"field,omitempty"`
	// Conflict is the existing booking that blocked the request.
	Conflict *model.Booking `json:"conflictingBooking,omitempty"`
}

// respond maps a service result onto an HTTP status and body.
func (h *BookingHandler) respond(c echo.Context, okStatus int, r service.Result) error {
	if r.Success {
		b := r.Booking
		return c.JSON(okStatus, result{Success: true, Message: r.Message, Booking: &b})
	}
	body := result{Message: r.Message}
	var ve *model.ValidationError
	var ce *store.ConflictError
	switch {
	case errors.As(r.Err, &ve):
		body.Field = ve.Field
		return c.JSON(http.StatusBadRequest, body)
	case errors.As(r.Err, &ce):
		existing := ce.Existing
		body.Conflict = &existing
		return c.JSON(http.StatusConflict, body)
	case errors.Is(r.Err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, body)
	}
	h.Log.Error("booking mutation failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("id", idParam(c)),
		zap.Error(r.Err))
	return c.JSON(http.StatusInternalServerError, body)
}

func idParam(c echo.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
