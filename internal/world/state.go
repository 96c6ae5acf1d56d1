package world

import (
	"cmp"
	"slices"

	"github.com/tickwalk/server/internal/core/ecs"
	"github.com/tickwalk/server/internal/entity"
)

// ViewDistance is how far, in tiles, a player sees other mobiles move.
const ViewDistance = 15

// Moved is a mobile whose per-tick facings can be broadcast.
type Moved interface {
	EntityID() ecs.EntityID
	Position() *entity.Position
	PrimaryDirection() int
	SecondaryDirection() int
}

// State holds everything in-world. Players and NPCs are components of
// ecs entities; removal is deferred to Flush at the end of the tick.
// Accessed only from the game loop goroutine.
type State struct {
	ecs     *ecs.World
	players *ecs.Store[Player]
	npcs    *ecs.Store[Npc]

	bySession map[uint64]ecs.EntityID
	byName    map[string]ecs.EntityID
}

func NewState() *State {
	s := &State{
		ecs:       ecs.NewWorld(),
		players:   ecs.NewStore[Player](),
		npcs:      ecs.NewStore[Npc](),
		bySession: make(map[uint64]ecs.EntityID),
		byName:    make(map[string]ecs.EntityID),
	}
	s.ecs.Register(s.players)
	s.ecs.Register(s.npcs)
	return s
}

// AddPlayer puts p in-world and assigns its entity ID.
func (s *State) AddPlayer(p *Player) ecs.EntityID {
	p.ID = s.ecs.CreateEntity()
	s.players.Set(p.ID, p)
	s.bySession[p.SessionID] = p.ID
	s.byName[p.Name] = p.ID
	return p.ID
}

// RemovePlayer unindexes the player at once and drops its entity during Flush.
func (s *State) RemovePlayer(id ecs.EntityID) *Player {
	p, ok := s.players.Get(id)
	if !ok {
		return nil
	}
	if s.bySession[p.SessionID] == id {
		delete(s.bySession, p.SessionID)
	}
	if s.byName[p.Name] == id {
		delete(s.byName, p.Name)
	}
	s.ecs.MarkForDestruction(id)
	return p
}

func (s *State) AddNpc(n *Npc) ecs.EntityID {
	n.ID = s.ecs.CreateEntity()
	s.npcs.Set(n.ID, n)
	return n.ID
}

func (s *State) RemoveNpc(id ecs.EntityID) {
	if s.npcs.Has(id) {
		s.ecs.MarkForDestruction(id)
	}
}

func (s *State) Player(id ecs.EntityID) *Player {
	p, _ := s.players.Get(id)
	return p
}

func (s *State) Npc(id ecs.EntityID) *Npc {
	n, _ := s.npcs.Get(id)
	return n
}

func (s *State) PlayerBySession(sessionID uint64) *Player {
	id, ok := s.bySession[sessionID]
	if !ok {
		return nil
	}
	return s.Player(id)
}

func (s *State) PlayerByName(name string) *Player {
	id, ok := s.byName[name]
	if !ok {
		return nil
	}
	return s.Player(id)
}

// Players returns online players ordered by entity ID.
func (s *State) Players() []*Player {
	out := make([]*Player, 0, s.players.Len())
	s.players.Each(func(_ ecs.EntityID, p *Player) {
		if _, indexed := s.bySession[p.SessionID]; indexed {
			out = append(out, p)
		}
	})
	slices.SortFunc(out, func(a, b *Player) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Npcs returns NPCs ordered by entity ID.
func (s *State) Npcs() []*Npc {
	out := make([]*Npc, 0, s.npcs.Len())
	s.npcs.Each(func(_ ecs.EntityID, n *Npc) {
		out = append(out, n)
	})
	slices.SortFunc(out, func(a, b *Npc) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *State) PlayerCount() int { return len(s.bySession) }

func (s *State) NpcCount() int { return s.npcs.Len() }

// Viewers returns the players that see a mobile at pos.
func (s *State) Viewers(pos entity.Point) []*Player {
	var out []*Player
	for _, p := range s.Players() {
		q := p.Position()
		if abs(q.X-pos.X) <= ViewDistance && abs(q.Y-pos.Y) <= ViewDistance {
			out = append(out, p)
		}
	}
	return out
}

// Teleport places the player or NPC with entity id at (x, y). It reports
// false when id is not in-world.
func (s *State) Teleport(id ecs.EntityID, x, y int) bool {
	if p := s.Player(id); p != nil {
		p.Teleport(x, y)
		return true
	}
	if n := s.Npc(id); n != nil {
		n.Teleport(x, y)
		return true
	}
	return false
}

// Flush destroys entities removed during this tick.
func (s *State) Flush() {
	s.ecs.FlushDestroyQueue()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
