package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/router"
	"github.com/iliyamo/room-booking/internal/schedule"
	"github.com/iliyamo/room-booking/internal/service"
	"github.com/iliyamo/room-booking/internal/store"
)

// newServer returns an echo instance over a seeded in-memory store.
func newServer(t *testing.T) (*echo.Echo, *service.Bookings) {
	t.Helper()
	e, svc, _ := newServerWith(t, repository.NewMemoryBlobStore())
	return e, svc
}

// newServerWith serves bookings kept in blobs and records handler logs.
func newServerWith(t *testing.T, blobs repository.BlobStore) (*echo.Echo, *service.Bookings, *observer.ObservedLogs) {
	t.Helper()
	s, err := store.Open(context.Background(), repository.NewBookingBlob(blobs, ""))
	require.NoError(t, err)
	svc := service.NewBookings(s, nil, schedule.DefaultGridConfig(), nil)

	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBookings(e, handler.NewBookingHandler(svc, zap.New(core)), nil)
	return e, svc, logs
}

// readOnlyBlobs rejects every write.
type readOnlyBlobs struct {
	*repository.MemoryBlobStore
}

var errReadOnly = errors.New("read-only storage")

func (readOnlyBlobs) Put(context.Context, string, []byte) error { return errReadOnly }

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type mutationResponse struct {
	Success            bool           `json:"success"`
	Message            string         `json:"message"`
	Booking            *model.Booking `json:"booking"`
	Field              string         `json:"field"`
	ConflictingBooking *model.Booking `json:"conflictingBooking"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// body is a Saturday 11:00-13:00 form for the given room.
func body(room string) string {
	return fmt.Sprintf(`{"groupName":"Robotics","instructorName":"Eng. Omar","day":"Saturday","timeFrom":"11:00","timeTo":"13:00","roomId":%q,"studentsCount":7}`, room)
}

func TestHealth(t *testing.T) {
	e, _ := newServer(t)
	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListBookingsSorted(t *testing.T) {
	e, _ := newServer(t)
	rec := do(e, http.MethodGet, "/v1/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Items []model.Booking `json:"items"`
	}](t, rec)
	require.Len(t, got.Items, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, []string{got.Items[0].ID, got.Items[1].ID, got.Items[2].ID, got.Items[3].ID})
}

func TestCreateConflictAndOtherRoom(t *testing.T) {
	e, svc := newServer(t)

	rec := do(e, http.MethodPost, "/v1/bookings", body("A"))
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	res := decode[mutationResponse](t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, store.MsgConflict, res.Message)
	require.NotNil(t, res.ConflictingBooking)
	assert.Equal(t, "1", res.ConflictingBooking.ID)

	rec = do(e, http.MethodPost, "/v1/bookings", body("B"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res = decode[mutationResponse](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, service.MsgAdded, res.Message)
	require.NotNil(t, res.Booking)
	assert.Equal(t, model.StatusRegular, res.Booking.Status)

	_, ok := svc.Store.Get(res.Booking.ID)
	assert.True(t, ok)
}

func TestCreateValidation(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodPost, "/v1/bookings", `{"groupName":"X","instructorName":"Y","day":"Monday","timeFrom":"14:00","timeTo":"13:00","roomId":"A","studentsCount":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	res := decode[mutationResponse](t, rec)
	assert.Equal(t, model.MsgStartBeforeEnd, res.Message)
	assert.Empty(t, res.Field)

	rec = do(e, http.MethodPost, "/v1/bookings", `{"day":"Monday"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.MsgRequiredFields, decode[mutationResponse](t, rec).Message)

	rec = do(e, http.MethodPost, "/v1/bookings", `{"groupName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBooking(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/v1/bookings/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Web", decode[model.Booking](t, rec).GroupName)

	rec = do(e, http.MethodGet, "/v1/bookings/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchMergesAndPutReplaces(t *testing.T) {
	e, svc := newServer(t)

	rec := do(e, http.MethodPatch, "/v1/bookings/1", `{"timeTo":"11:30"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[mutationResponse](t, rec)
	assert.Equal(t, service.MsgUpdated, res.Message)
	b, _ := svc.Store.Get("1")
	assert.Equal(t, "10:00", b.TimeFrom)
	assert.Equal(t, "11:30", b.TimeTo)
	assert.Equal(t, "Arduino Code", b.GroupName)

	// PUT drops every field that is not sent.
	rec = do(e, http.MethodPut, "/v1/bookings/1", `{"timeTo":"12:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPatch, "/v1/bookings/missing", `{"timeTo":"11:30"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchSelfOverlapAndConflict(t *testing.T) {
	e, _ := newServer(t)

	// Overlaps only its own previous slot.
	rec := do(e, http.MethodPatch, "/v1/bookings/1", `{"timeFrom":"11:00","timeTo":"13:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Moving booking 2 into room A on Saturday collides with booking 1.
	rec = do(e, http.MethodPatch, "/v1/bookings/2", `{"roomId":"A","day":"saturday"}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	res := decode[mutationResponse](t, rec)
	require.NotNil(t, res.ConflictingBooking)
	assert.Equal(t, "1", res.ConflictingBooking.ID)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	e, svc := newServer(t)

	rec := do(e, http.MethodDelete, "/v1/bookings/3", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	_, ok := svc.Store.Get("3")
	assert.True(t, ok, "unconfirmed delete must not remove")

	rec = do(e, http.MethodDelete, "/v1/bookings/3?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok = svc.Store.Get("3")
	assert.False(t, ok)

	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/3", nil)
	req.Header.Set("X-Confirm-Delete", "true")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting an unknown id is a no-op")
	assert.Len(t, svc.ListBookings(), 3)
}

func TestCheckBooking(t *testing.T) {
	e, svc := newServer(t)

	type checkResponse struct {
		Conflict           bool           `json:"conflict"`
		ConflictingBooking *model.Booking `json:"conflictingBooking"`
		Message            string         `json:"message"`
	}

	rec := do(e, http.MethodPost, "/v1/bookings/check", body("A"))
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[checkResponse](t, rec)
	assert.True(t, res.Conflict)
	require.NotNil(t, res.ConflictingBooking)
	assert.Equal(t, "1", res.ConflictingBooking.ID)
	assert.Equal(t, store.MsgConflict, res.Message)

	withExclude := strings.TrimSuffix(body("A"), "}") + `,"excludeId":"1"}`
	rec = do(e, http.MethodPost, "/v1/bookings/check", withExclude)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[checkResponse](t, rec).Conflict)

	assert.Len(t, svc.ListBookings(), 4, "check never mutates")
}

func TestReferenceData(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/v1/rooms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rooms := decode[struct {
		Items []model.Room `json:"items"`
	}](t, rec)
	assert.Equal(t, model.DefaultRooms(), rooms.Items)

	rec = do(e, http.MethodGet, "/v1/days", "")
	require.Equal(t, http.StatusOK, rec.Code)
	days := decode[struct {
		Items []model.Day `json:"items"`
	}](t, rec)
	assert.Equal(t, model.Week(), days.Items)
}

type scheduleResponse struct {
	Slots []string `json:"slots"`
	Days  []struct {
		Day  model.Day `json:"day"`
		Rows []struct {
			Time  string `json:"time"`
			Cells []struct {
				RoomID  string         `json:"roomId"`
				Kind    string         `json:"kind"`
				RowSpan int            `json:"rowSpan"`
				Booking *model.Booking `json:"booking"`
			} `json:"cells"`
		} `json:"rows"`
	} `json:"days"`
	Empty bool `json:"empty"`
}

func TestGetSchedule(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/v1/schedule?day=saturday", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[scheduleResponse](t, rec)
	assert.False(t, res.Empty)
	assert.Len(t, res.Slots, 27)
	require.Len(t, res.Days, 1)
	assert.Equal(t, model.Saturday, res.Days[0].Day)

	rows := res.Days[0].Rows
	require.Len(t, rows, 27)
	// 10:00 is row 2; booking 1 anchors there and spans four rows.
	anchor := rows[2].Cells[0]
	assert.Equal(t, "10:00", rows[2].Time)
	assert.Equal(t, "anchor", anchor.Kind)
	assert.Equal(t, 4, anchor.RowSpan)
	require.NotNil(t, anchor.Booking)
	assert.Equal(t, "1", anchor.Booking.ID)
	for i := 3; i <= 5; i++ {
		assert.Len(t, rows[i].Cells, 3, "room A is covered by the anchor at %s", rows[i].Time)
		assert.Equal(t, "B", rows[i].Cells[0].RoomID)
	}
	assert.Len(t, rows[6].Cells, 4)
}

func TestGetScheduleAllDaysAndBadDay(t *testing.T) {
	e, _ := newServer(t)

	rec := do(e, http.MethodGet, "/v1/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[scheduleResponse](t, rec).Days, 7)

	rec = do(e, http.MethodGet, "/v1/schedule?day=Someday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveFailuresAreLogged(t *testing.T) {
	e, svc, logs := newServerWith(t, readOnlyBlobs{repository.NewMemoryBlobStore()})

	rec := do(e, http.MethodPost, "/v1/bookings", body("B"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Could not save the booking.", decode[mutationResponse](t, rec).Message)

	rec = do(e, http.MethodDelete, "/v1/bookings/1?confirm=true", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	_, ok := svc.Store.Get("1")
	assert.True(t, ok)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "booking mutation failed", entries[0].Message)
	assert.Equal(t, http.MethodPost, entries[0].ContextMap()["method"])
	assert.Contains(t, entries[0].ContextMap()["error"], errReadOnly.Error())
	assert.Equal(t, "delete booking failed", entries[1].Message)
	assert.Equal(t, "1", entries[1].ContextMap()["id"])
}
