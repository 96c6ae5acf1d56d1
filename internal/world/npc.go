package world

import (
	"github.com/tickwalk/server/internal/core/ecs"
	"github.com/tickwalk/server/internal/entity"
	"github.com/tickwalk/server/internal/movement"
)

// Npc is a server-controlled mobile. It has no run energy and no client, so
// its path queue only runs when the path itself is flagged as running.
type Npc struct {
	entity.Body

	ID   ecs.EntityID
	Name string

	// Patrol
	Route       []entity.Point
	Run         bool
	PatrolDelay int

	Movement *movement.Handler
}

func NewNpc(name string, x, y int) *Npc {
	n := &Npc{
		Body: entity.NewBody(x, y),
		Name: name,
	}
	n.Movement = movement.NewHandler(n)
	return n
}

func (n *Npc) EntityID() ecs.EntityID { return n.ID }

// Teleport places the NPC and drops any pending path.
func (n *Npc) Teleport(x, y int) {
	n.Position().Set(x, y)
	n.Recenter()
	n.Movement.Reset()
}
