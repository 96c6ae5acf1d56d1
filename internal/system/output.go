package system

import (
	"time"

	coresys "github.com/tickwalk/server/internal/core/system"
	"github.com/tickwalk/server/internal/monitor"
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/world"
)

// SnapshotPublisher receives world snapshots. *monitor.Hub implements it.
type SnapshotPublisher interface {
	Publish(s monitor.Snapshot)
}

// OutputSystem broadcasts this tick's steps, clears per-tick facings and
// flushes every session. Phase 4 (Output).
type OutputSystem struct {
	world     *world.State
	store     *net.SessionStore
	publisher SnapshotPublisher // nil = monitor disabled
	every     int
	ticks     uint64
}

func NewOutputSystem(ws *world.State, store *net.SessionStore, publisher SnapshotPublisher, broadcastEvery int) *OutputSystem {
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	return &OutputSystem{
		world:     ws,
		store:     store,
		publisher: publisher,
		every:     broadcastEvery,
	}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.ticks++
	players := s.world.Players()
	npcs := s.world.Npcs()

	for _, p := range players {
		if p.Moved() {
			p.Dirty = true
			s.broadcastMove(p)
		}
	}
	for _, n := range npcs {
		if n.Moved() {
			s.broadcastMove(n)
		}
	}
	for _, p := range players {
		p.ResetFacing()
	}
	for _, n := range npcs {
		n.ResetFacing()
	}

	for _, sess := range s.store.All() {
		sess.FlushOutput()
	}

	if s.publisher != nil && s.ticks%uint64(s.every) == 0 {
		s.publisher.Publish(s.snapshot(players, npcs))
	}
}

func (s *OutputSystem) broadcastMove(m world.Moved) {
	for _, viewer := range s.world.Viewers(m.Position().Point()) {
		viewer.SendMove(m)
	}
}

func (s *OutputSystem) snapshot(players []*world.Player, npcs []*world.Npc) monitor.Snapshot {
	snap := monitor.Snapshot{
		Tick:     s.ticks,
		Players:  len(players),
		Npcs:     len(npcs),
		Entities: make([]monitor.EntityView, 0, len(players)+len(npcs)),
	}
	for _, p := range players {
		pos := p.Position()
		snap.Entities = append(snap.Entities, monitor.EntityView{
			ID:        p.ID.Index(),
			Kind:      "player",
			Name:      p.Name,
			X:         pos.X,
			Y:         pos.Y,
			RunEnergy: p.RunEnergy(),
			Running:   p.RunToggled() || p.Movement.RunPath(),
		})
	}
	for _, n := range npcs {
		pos := n.Position()
		snap.Entities = append(snap.Entities, monitor.EntityView{
			ID:      n.ID.Index(),
			Kind:    "npc",
			Name:    n.Name,
			X:       pos.X,
			Y:       pos.Y,
			Running: n.Movement.RunPath(),
		})
	}
	return snap
}
