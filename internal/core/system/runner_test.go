package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(time.Duration) { *s.log = append(*s.log, s.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "cleanup", phase: PhaseCleanup, log: &log})
	r.Register(&recordingSystem{name: "tasks", phase: PhaseUpdate, log: &log})
	r.Register(&recordingSystem{name: "input", phase: PhaseInput, log: &log})
	r.Register(&recordingSystem{name: "movement", phase: PhaseUpdate, log: &log})

	r.Tick(200 * time.Millisecond)

	want := []string{"input", "tasks", "movement", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
	if r.Ticks() != 1 {
		t.Fatalf("Ticks() = %d", r.Ticks())
	}
}
