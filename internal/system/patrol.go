package system

import (
	"github.com/tickwalk/server/internal/data"
	"github.com/tickwalk/server/internal/entity"
	"github.com/tickwalk/server/internal/task"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// patrol is the state of one NPC's route walk.
type patrol struct {
	world *world.State
	npc   *world.Npc
	next  int
}

// SpawnNpcs puts every spawn entry in-world and schedules a patrol task for
// each NPC with a route. It returns the number of NPCs spawned.
func SpawnNpcs(ws *world.State, sched *task.Scheduler, spawns []data.SpawnEntry, log *zap.Logger) int {
	for _, e := range spawns {
		n := world.NewNpc(e.Name, e.X, e.Y)
		n.Run = e.Run
		n.PatrolDelay = e.PatrolDelay
		for _, wp := range e.Route {
			n.Route = append(n.Route, entity.Point{X: wp.X, Y: wp.Y})
		}
		ws.AddNpc(n)
		if len(n.Route) > 0 {
			sched.Submit(NewPatrolTask(ws, n))
		}
	}
	log.Info("NPC 生成完成", zap.Int("count", len(spawns)))
	return len(spawns)
}

// NewPatrolTask returns a recurring task that sends n to its next waypoint
// whenever it has nothing left to walk.
func NewPatrolTask(ws *world.State, n *world.Npc) *task.Task[*patrol] {
	return task.New(n.PatrolDelay, false, n, &patrol{world: ws, npc: n}, patrolStep)
}

func patrolStep(t *task.Task[*patrol]) error {
	pt := t.Params()
	n := pt.npc
	if pt.world.Npc(n.ID) != n {
		t.SetInactive()
		return nil
	}
	if len(n.Route) == 0 || !n.Movement.Idle() {
		return nil
	}
	wp := n.Route[pt.next%len(n.Route)]
	pt.next++

	h := n.Movement
	h.Reset()
	h.AddToPath(wp)
	h.Finish()
	h.SetRunPath(n.Run)
	return nil
}
