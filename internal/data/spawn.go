package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Waypoint is one tile of a patrol route.
type Waypoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SpawnEntry places one NPC and describes its patrol.
type SpawnEntry struct {
	Name        string     `yaml:"name"`
	X           int        `yaml:"x"`
	Y           int        `yaml:"y"`
	Run         bool       `yaml:"run"`
	PatrolDelay int        `yaml:"patrol_delay"` // ticks between route checks
	Route       []Waypoint `yaml:"route"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// SpawnTable holds every NPC spawn in file order.
type SpawnTable struct {
	entries []SpawnEntry
}

// LoadSpawnTable loads NPC spawns from a YAML file.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	for i, e := range f.Spawns {
		if e.Name == "" {
			return nil, fmt.Errorf("spawn_list entry %d: missing name", i)
		}
		if e.PatrolDelay < 0 {
			return nil, fmt.Errorf("spawn_list entry %d (%s): negative patrol_delay", i, e.Name)
		}
	}
	return &SpawnTable{entries: f.Spawns}, nil
}

// All returns the spawns in file order.
func (t *SpawnTable) All() []SpawnEntry {
	return t.entries
}

func (t *SpawnTable) Count() int {
	return len(t.entries)
}
