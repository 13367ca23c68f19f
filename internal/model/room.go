package model

// Room is a bookable physical room.  The set of rooms is loaded once at
// startup and never mutated while the process runs.
//
// Fields:
//  ID   – unique short identifier referenced by Booking.RoomID.
//  Name – display label.
type Room struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DefaultRooms returns the built-in room set used when no rooms file is
// configured.
func DefaultRooms() []Room {
	return []Room{
		{ID: "A", Name: "Room A"},
		{ID: "B", Name: "Room B"},
		{ID: "C", Name: "Room C"},
		{ID: "D", Name: "Room D"},
	}
}

// FindRoom returns the room with the given id.
func FindRoom(rooms []Room, id string) (Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}
