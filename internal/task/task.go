package task

import (
	"fmt"

	"github.com/tickwalk/server/internal/core/ecs"
)

// Owner is the entity a task is bound to.
type Owner interface {
	EntityID() ecs.EntityID
}

// Action is the body of a task, run each time its countdown expires.
type Action[P any] func(t *Task[P]) error

// Task is a tick-counted, optionally recurring action.
//
// The countdown starts at the base delay and is decremented once per tick;
// the action runs on the tick after it reaches zero, so a task with delay d
// fires every d+1 ticks. A run-once task deactivates after its first
// successful firing. Inactive tasks ignore further ticks.
type Task[P any] struct {
	delay     int
	countdown int
	runOnce   bool
	active    bool
	fired     int
	owner     Owner
	params    P
	action    Action[P]
}

// New creates an active task. owner may be nil for tasks bound to the world
// rather than to an entity.
func New[P any](delay int, runOnce bool, owner Owner, params P, action Action[P]) *Task[P] {
	return &Task[P]{
		delay:     delay,
		countdown: delay,
		runOnce:   runOnce,
		active:    true,
		owner:     owner,
		params:    params,
		action:    action,
	}
}

// Once creates a run-once task without parameters.
func Once(delay int, owner Owner, action Action[struct{}]) *Task[struct{}] {
	return New(delay, true, owner, struct{}{}, action)
}

// Tick advances the countdown and fires the action when it has expired.
// An action error is returned as is; the task stays active and expired, so
// it fires again next tick unless cancelled.
func (t *Task[P]) Tick() error {
	if !t.active {
		return nil
	}
	prev := t.countdown
	t.countdown--
	if prev > 0 {
		return nil
	}
	if err := t.action(t); err != nil {
		return fmt.Errorf("task action (fired %d): %w", t.fired, err)
	}
	t.fired++
	t.countdown = t.delay
	if t.runOnce {
		t.active = false
	}
	return nil
}

// SetInactive cancels the task. A firing already in progress completes.
func (t *Task[P]) SetInactive() { t.active = false }

func (t *Task[P]) Active() bool { return t.active }

// Fired returns the number of successful firings.
func (t *Task[P]) Fired() int { return t.fired }

func (t *Task[P]) Params() P { return t.params }

func (t *Task[P]) Owner() Owner { return t.owner }

func (t *Task[P]) Delay() int { return t.delay }

func (t *Task[P]) RunOnce() bool { return t.runOnce }
