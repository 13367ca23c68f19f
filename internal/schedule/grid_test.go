package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/model"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots(DefaultGridConfig())
	require.Len(t, slots, 27)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "22:00", slots[26])

	hourly := TimeSlots(GridConfig{SlotMinutes: 60, StartHour: 8, EndHour: 10})
	assert.Equal(t, []string{"08:00", "09:00", "10:00"}, hourly)

	assert.Equal(t, slots, TimeSlots(GridConfig{SlotMinutes: 0, StartHour: 9, EndHour: 22}), "invalid config falls back to defaults")
}

func TestBuildGridSpan(t *testing.T) {
	rooms := model.DefaultRooms()
	b := booking("1", "A", model.Saturday, "10:00", "12:00")
	g := BuildGrid([]model.Booking{b}, rooms, DefaultGridConfig())

	anchor := g.Cell(model.Saturday, "10:00", "A")
	require.Equal(t, CellAnchor, anchor.Kind)
	require.NotNil(t, anchor.Booking)
	assert.Equal(t, "1", anchor.Booking.ID)
	assert.Equal(t, 4, anchor.Span)

	for _, s := range []string{"10:30", "11:00", "11:30"} {
		assert.Equal(t, CellContinuation, g.Cell(model.Saturday, s, "A").Kind, s)
	}
	assert.Equal(t, CellEmpty, g.Cell(model.Saturday, "12:00", "A").Kind)
	assert.Equal(t, CellEmpty, g.Cell(model.Saturday, "09:30", "A").Kind)
	assert.Equal(t, CellEmpty, g.Cell(model.Saturday, "10:00", "B").Kind)
	assert.Equal(t, CellEmpty, g.Cell(model.Sunday, "10:00", "A").Kind)

	assert.Equal(t, 1, g.Count(model.Saturday, "A", CellAnchor))
	assert.Equal(t, 3, g.Count(model.Saturday, "A", CellContinuation))
}

func TestBuildGridPartialSlotRoundsUp(t *testing.T) {
	g := BuildGrid([]model.Booking{booking("1", "D", model.Thursday, "12:30", "13:40")}, model.DefaultRooms(), DefaultGridConfig())
	c := g.Cell(model.Thursday, "12:30", "D")
	require.Equal(t, CellAnchor, c.Kind)
	assert.Equal(t, 3, c.Span)
	assert.Equal(t, 2, g.Count(model.Thursday, "D", CellContinuation))
}

func TestBuildGridSkips(t *testing.T) {
	rooms := model.DefaultRooms()
	for _, tc := range []struct {
		name string
		b    model.Booking
	}{
		{name: "end before start", b: booking("1", "A", model.Monday, "12:00", "10:00")},
		{name: "zero length", b: booking("2", "A", model.Monday, "10:00", "10:00")},
		{name: "misaligned start", b: booking("3", "A", model.Monday, "10:15", "11:00")},
		{name: "before grid", b: booking("4", "A", model.Monday, "07:00", "08:00")},
		{name: "unknown room", b: booking("5", "Z", model.Monday, "10:00", "11:00")},
		{name: "unknown day", b: booking("6", "A", "Funday", "10:00", "11:00")},
		{name: "malformed time", b: booking("7", "A", model.Monday, "10am", "11:00")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := BuildGrid([]model.Booking{tc.b}, rooms, DefaultGridConfig())
			for _, d := range g.Days() {
				for _, r := range rooms {
					assert.Zero(t, g.Count(d, r.ID, CellAnchor))
					assert.Zero(t, g.Count(d, r.ID, CellContinuation))
				}
			}
		})
	}
}

func TestBuildGridClampsAtEnd(t *testing.T) {
	g := BuildGrid([]model.Booking{booking("1", "B", model.Friday, "21:00", "23:30")}, model.DefaultRooms(), DefaultGridConfig())
	c := g.Cell(model.Friday, "21:00", "B")
	require.Equal(t, CellAnchor, c.Kind)
	assert.Equal(t, 5, c.Span)
	assert.Equal(t, 2, g.Count(model.Friday, "B", CellContinuation), "21:30 and 22:00 only")

	rows := g.Rows(model.Friday)
	last := rows[len(rows)-3] // 21:00
	require.Equal(t, "21:00", last.Time)
	for _, rc := range last.Cells {
		if rc.RoomID == "B" {
			assert.Equal(t, 3, rc.RowSpan)
		}
	}
}

func TestGridRowsSuppressContinuation(t *testing.T) {
	rooms := model.DefaultRooms()
	g := BuildGrid([]model.Booking{booking("1", "A", model.Saturday, "10:00", "12:00")}, rooms, DefaultGridConfig())
	rows := g.Rows(model.Saturday)
	require.Len(t, rows, 27)

	byTime := map[string]Row{}
	for _, r := range rows {
		byTime[r.Time] = r
	}
	assert.Len(t, byTime["09:00"].Cells, len(rooms))
	assert.Len(t, byTime["10:00"].Cells, len(rooms))
	assert.Len(t, byTime["10:30"].Cells, len(rooms)-1)
	assert.Len(t, byTime["11:30"].Cells, len(rooms)-1)
	assert.Len(t, byTime["12:00"].Cells, len(rooms))

	anchor := byTime["10:00"].Cells[0]
	assert.Equal(t, "A", anchor.RoomID)
	assert.Equal(t, CellAnchor, anchor.Kind)
	assert.Equal(t, 4, anchor.RowSpan)
}

func TestBuildGridDoesNotAliasInput(t *testing.T) {
	bs := []model.Booking{booking("1", "A", model.Saturday, "10:00", "11:00")}
	g := BuildGrid(bs, model.DefaultRooms(), DefaultGridConfig())
	bs[0].GroupName = "changed"
	assert.Equal(t, "G1", g.Cell(model.Saturday, "10:00", "A").Booking.GroupName)
}
