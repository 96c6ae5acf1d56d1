package event

import "github.com/tickwalk/server/internal/core/ecs"

type PlayerLoggedIn struct {
	EntityID    ecs.EntityID
	AccountName string
}

type PlayerDisconnected struct {
	EntityID  ecs.EntityID
	SessionID uint64
}

// TaskFailed is emitted by the task scheduler when a task action returns an
// error or panics. Owner is zero for world-bound tasks.
type TaskFailed struct {
	Owner ecs.EntityID
	Err   error
}
