package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/model"
)

func TestLoadRoomsDefault(t *testing.T) {
	rooms, err := LoadRooms("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRooms(), rooms)
}

func TestLoadRoomsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	doc := "rooms:\n  - id: Lab1\n    name: Electronics Lab\n  - id: \" Lab2 \"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	rooms, err := LoadRooms(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Room{
		{ID: "Lab1", Name: "Electronics Lab"},
		{ID: "Lab2", Name: "Room Lab2"},
	}, rooms)
}

func TestLoadRoomsMissingFile(t *testing.T) {
	_, err := LoadRooms(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParseRoomsRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty list", "rooms: []\n"},
		{"no rooms key", "other: 1\n"},
		{"blank id", "rooms:\n  - id: \"\"\n    name: X\n"},
		{"duplicate id", "rooms:\n  - id: A\n  - id: A\n"},
		{"unknown field", "rooms:\n  - id: A\n    capacity: 30\n"},
		{"not yaml", "rooms: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRooms([]byte(tc.doc))
			require.Error(t, err)
		})
	}
}
