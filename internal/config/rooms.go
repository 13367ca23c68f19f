package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/iliyamo/room-booking/internal/model"
)

// roomsFile is the YAML layout of ROOMS_FILE:
//
//	rooms:
//	  - id: A
//	    name: Room A
type roomsFile struct {
	Rooms []model.Room `yaml:"rooms"`
}

// LoadRooms returns the default rooms when path is empty and otherwise
// the rooms listed in the YAML file.
func LoadRooms(path string) ([]model.Room, error) {
	if path == "" {
		return model.DefaultRooms(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rooms file: %w", err)
	}
	return ParseRooms(raw)
}

// ParseRooms decodes a rooms document.  Ids must be non-empty and unique;
// a missing name defaults to "Room <id>".
func ParseRooms(raw []byte) ([]model.Room, error) {
	var f roomsFile
	if err := yaml.UnmarshalStrict(raw, &f); err != nil {
		return nil, fmt.Errorf("parse rooms file: %w", err)
	}
	if len(f.Rooms) == 0 {
		return nil, fmt.Errorf("rooms file lists no rooms")
	}
	seen := make(map[string]bool, len(f.Rooms))
	out := make([]model.Room, 0, len(f.Rooms))
	for i, r := range f.Rooms {
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if r.ID == "" {
			return nil, fmt.Errorf("room #%d has no id", i+1)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate room id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Name == "" {
			r.Name = "Room " + r.ID
		}
		out = append(out, r)
	}
	return out, nil
}
