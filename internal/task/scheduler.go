package task

import (
	"fmt"
	"time"

	"github.com/tickwalk/server/internal/core/ecs"
	"github.com/tickwalk/server/internal/core/event"
	coresys "github.com/tickwalk/server/internal/core/system"
	"go.uber.org/zap"
)

// Unit is a schedulable task. *Task[P] implements it for every P.
type Unit interface {
	coresys.Tickable
	Active() bool
	SetInactive()
	Owner() Owner
}

// Scheduler ticks every active task once per tick and drops finished ones.
// A failing task never aborts the tick for the others. Phase 2 (Update).
type Scheduler struct {
	units   []Unit
	pending []Unit
	bus     *event.Bus
	log     *zap.Logger

	deactivateOnFailure bool
}

func NewScheduler(bus *event.Bus, deactivateOnFailure bool, log *zap.Logger) *Scheduler {
	return &Scheduler{
		units:               make([]Unit, 0, 64),
		bus:                 bus,
		log:                 log,
		deactivateOnFailure: deactivateOnFailure,
	}
}

func (s *Scheduler) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Submit queues a task. It is first ticked on the next Update, so tasks
// submitted from inside another task's action never run in the same pass.
func (s *Scheduler) Submit(u Unit) {
	s.pending = append(s.pending, u)
}

func (s *Scheduler) Update(_ time.Duration) {
	if len(s.pending) > 0 {
		s.units = append(s.units, s.pending...)
		clear(s.pending)
		s.pending = s.pending[:0]
	}
	for _, u := range s.units {
		if err := s.safeTick(u); err != nil {
			s.fail(u, err)
		}
	}
	s.prune()
}

// CancelOwner deactivates every task bound to id and returns how many were
// still active.
func (s *Scheduler) CancelOwner(id ecs.EntityID) int {
	n := 0
	cancel := func(units []Unit) {
		for _, u := range units {
			if !u.Active() {
				continue
			}
			if o := u.Owner(); o != nil && o.EntityID() == id {
				u.SetInactive()
				n++
			}
		}
	}
	cancel(s.units)
	cancel(s.pending)
	return n
}

// Len returns the number of tracked tasks, including ones not yet started.
func (s *Scheduler) Len() int { return len(s.units) + len(s.pending) }

func (s *Scheduler) safeTick(u Unit) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panic: %v", rec)
		}
	}()
	return u.Tick()
}

func (s *Scheduler) fail(u Unit, err error) {
	var owner ecs.EntityID
	if o := u.Owner(); o != nil {
		owner = o.EntityID()
	}
	s.log.Debug("排程任務失敗",
		zap.Uint64("owner", uint64(owner)),
		zap.Bool("deactivated", s.deactivateOnFailure),
		zap.Error(err),
	)
	if s.deactivateOnFailure {
		u.SetInactive()
	}
	if s.bus != nil {
		event.Emit(s.bus, event.TaskFailed{Owner: owner, Err: err})
	}
}

func (s *Scheduler) prune() {
	kept := s.units[:0]
	for _, u := range s.units {
		if u.Active() {
			kept = append(kept, u)
		}
	}
	clear(s.units[len(kept):])
	s.units = kept
}
