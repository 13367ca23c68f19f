package schedule

import "github.com/iliyamo/room-booking/internal/model"

// GridConfig controls the time axis of the weekly grid.
type GridConfig struct {
	SlotMinutes int `json:"slotMinutes"`
	StartHour   int `json:"startHour"`
	EndHour     int `json:"endHour"`
}

// DefaultGridConfig is 09:00 to 22:00 in 30 minute slots.
func DefaultGridConfig() GridConfig {
	return GridConfig{SlotMinutes: 30, StartHour: 9, EndHour: 22}
}

// normalize replaces an unusable config with the defaults.
func (c GridConfig) normalize() GridConfig {
	if c.SlotMinutes <= 0 || c.StartHour < 0 || c.EndHour > 23 || c.EndHour < c.StartHour {
		return DefaultGridConfig()
	}
	return c
}

// TimeSlots lists the slot labels from StartHour:00 to EndHour:00
// inclusive.  The default config yields 27 labels.
func TimeSlots(cfg GridConfig) []string {
	cfg = cfg.normalize()
	var out []string
	for m := cfg.StartHour * 60; m <= cfg.EndHour*60; m += cfg.SlotMinutes {
		out = append(out, model.FormatClock(m))
	}
	return out
}

// CellKind is the state of one grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellAnchor
	CellContinuation
)

func (k CellKind) String() string {
	switch k {
	case CellAnchor:
		return "anchor"
	case CellContinuation:
		return "continuation"
	}
	return "empty"
}

// MarshalText renders the kind as its name.
func (k CellKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Cell is one (day, slot, room) position.  Booking and Span are set only
// for anchors; Span is the number of slot rows the anchor covers.
type Cell struct {
	Kind    CellKind
	Booking *model.Booking
	Span    int
}

// Grid is the derived day × slot × room occupancy table.  It is rebuilt
// from scratch whenever bookings or rooms change.
type Grid struct {
	cfg   GridConfig
	slots []string
	rooms []model.Room
	days  []model.Day
	cells map[model.Day]map[string]map[string]Cell
}

// BuildGrid lays bookings out on the grid.  A booking is skipped when its
// end is not after its start, when its start is not on a slot boundary,
// or when its day or room is not on the grid.  The continuation run is
// clamped to the last slot.
func BuildGrid(bookings []model.Booking, rooms []model.Room, cfg GridConfig) *Grid {
	cfg = cfg.normalize()
	g := &Grid{
		cfg:   cfg,
		slots: TimeSlots(cfg),
		rooms: append([]model.Room(nil), rooms...),
		days:  model.Week(),
		cells: make(map[model.Day]map[string]map[string]Cell, 7),
	}
	for _, d := range g.days {
		byTime := make(map[string]map[string]Cell, len(g.slots))
		for _, s := range g.slots {
			byRoom := make(map[string]Cell, len(rooms))
			for _, r := range rooms {
				byRoom[r.ID] = Cell{Kind: CellEmpty}
			}
			byTime[s] = byRoom
		}
		g.cells[d] = byTime
	}

	slotIndex := make(map[string]int, len(g.slots))
	for i, s := range g.slots {
		if _, dup := slotIndex[s]; !dup {
			slotIndex[s] = i
		}
	}

	for i := range bookings {
		b := bookings[i]
		start, err := model.ParseClock(b.TimeFrom)
		if err != nil {
			continue
		}
		end, err := model.ParseClock(b.TimeTo)
		if err != nil || end <= start {
			continue
		}
		byTime, ok := g.cells[b.Day]
		if !ok {
			continue
		}
		if _, ok := model.FindRoom(rooms, b.RoomID); !ok {
			continue
		}
		idx, ok := slotIndex[model.FormatClock(start)]
		if !ok {
			continue
		}
		span := (end - start + cfg.SlotMinutes - 1) / cfg.SlotMinutes
		byTime[g.slots[idx]][b.RoomID] = Cell{Kind: CellAnchor, Booking: &b, Span: span}
		for k := 1; k < span && idx+k < len(g.slots); k++ {
			byTime[g.slots[idx+k]][b.RoomID] = Cell{Kind: CellContinuation}
		}
	}
	return g
}

// Config returns the effective grid configuration.
func (g *Grid) Config() GridConfig { return g.cfg }

// Slots returns the slot labels in order.
func (g *Grid) Slots() []string { return g.slots }

// Days returns the grid days in schedule order.
func (g *Grid) Days() []model.Day { return g.days }

// Rooms returns the grid columns.
func (g *Grid) Rooms() []model.Room { return g.rooms }

// Cell returns the cell at the given position; positions outside the grid
// are reported as empty.
func (g *Grid) Cell(day model.Day, slot, roomID string) Cell {
	if c, ok := g.cells[day][slot][roomID]; ok {
		return c
	}
	return Cell{Kind: CellEmpty}
}

// Row is one rendered time row of a day table.  Cells holds one entry per
// room that must be drawn: continuation cells are omitted because the
// anchor above spans them.
type Row struct {
	Time  string       `json:"time"`
	Cells []RenderCell `json:"cells"`
}

// RenderCell is a drawable cell.  RowSpan is 1 for empty cells.
type RenderCell struct {
	RoomID  string         `json:"roomId"`
	Kind    CellKind       `json:"kind"`
	RowSpan int            `json:"rowSpan"`
	Booking *model.Booking `json:"booking,omitempty"`
}

// Rows returns the drawable rows of one day.
func (g *Grid) Rows(day model.Day) []Row {
	rows := make([]Row, 0, len(g.slots))
	for i, s := range g.slots {
		row := Row{Time: s, Cells: make([]RenderCell, 0, len(g.rooms))}
		for _, r := range g.rooms {
			c := g.Cell(day, s, r.ID)
			switch c.Kind {
			case CellContinuation:
				continue
			case CellAnchor:
				span := c.Span
				if rest := len(g.slots) - i; span > rest {
					span = rest
				}
				row.Cells = append(row.Cells, RenderCell{RoomID: r.ID, Kind: c.Kind, RowSpan: span, Booking: c.Booking})
			default:
				row.Cells = append(row.Cells, RenderCell{RoomID: r.ID, Kind: CellEmpty, RowSpan: 1})
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Count returns how many cells of the given kind a room has on a day.
func (g *Grid) Count(day model.Day, roomID string, kind CellKind) int {
	n := 0
	for _, s := range g.slots {
		if g.Cell(day, s, roomID).Kind == kind {
			n++
		}
	}
	return n
}
