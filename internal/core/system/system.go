package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain packet queues
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: tasks, then movement
	PhasePostUpdate              // 3: reserved
	PhaseOutput                  // 4: build + send packets
	PhasePersist                 // 5: autosave
	PhaseCleanup                 // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "Input"
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseUpdate:
		return "Update"
	case PhasePostUpdate:
		return "PostUpdate"
	case PhaseOutput:
		return "Output"
	case PhasePersist:
		return "Persist"
	case PhaseCleanup:
		return "Cleanup"
	}
	return "Unknown"
}

// System is the interface every game loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Tickable is a unit advanced exactly once per tick by its owning system.
// Tick runs to completion synchronously; a non-nil error reports that the
// unit's work failed this tick and leaves isolation to the caller.
type Tickable interface {
	Tick() error
}
