package world

import (
	"github.com/tickwalk/server/internal/core/ecs"
	"github.com/tickwalk/server/internal/entity"
	"github.com/tickwalk/server/internal/movement"
)

// Sender receives encoded server packets. *net.Session implements it.
type Sender interface {
	Send(data []byte)
}

// PlayerData is the persisted part of a player.
type PlayerData struct {
	CharID      int64
	AccountName string
	Name        string
	AccessLevel int
	X           int
	Y           int
	RunEnergy   int
	RunToggled  bool
	Weight      int
	Agility     int
}

// Player is a client-controlled mobile. Accessed only from the game loop.
type Player struct {
	entity.Body

	ID        ecs.EntityID
	SessionID uint64

	CharID      int64
	AccountName string
	Name        string
	AccessLevel int
	Weight      int
	Agility     int

	Movement *movement.Handler

	energy     entity.RunEnergy
	runToggled bool
	energyInc  int
	energyDec  int

	sender Sender

	// Dirty is set whenever persisted state changes and cleared on save.
	Dirty bool
}

func NewPlayer(sessionID uint64, sender Sender, d PlayerData) *Player {
	p := &Player{
		Body:        entity.NewBody(d.X, d.Y),
		SessionID:   sessionID,
		CharID:      d.CharID,
		AccountName: d.AccountName,
		Name:        d.Name,
		AccessLevel: d.AccessLevel,
		Weight:      d.Weight,
		Agility:     d.Agility,
		energy:      entity.NewRunEnergy(d.RunEnergy),
		runToggled:  d.RunToggled,
		energyInc:   1,
		energyDec:   1,
		sender:      sender,
	}
	p.Movement = movement.NewHandler(p)
	return p
}

func (p *Player) EntityID() ecs.EntityID { return p.ID }

// Data returns the player's persisted fields.
func (p *Player) Data() PlayerData {
	pos := p.Position()
	return PlayerData{
		CharID:      p.CharID,
		AccountName: p.AccountName,
		Name:        p.Name,
		AccessLevel: p.AccessLevel,
		X:           pos.X,
		Y:           pos.Y,
		RunEnergy:   p.energy.Value(),
		RunToggled:  p.runToggled,
		Weight:      p.Weight,
		Agility:     p.Agility,
	}
}

// SetRunEnergyRates sets the per-step run energy regeneration and drain.
func (p *Player) SetRunEnergyRates(increment, decrement int) {
	p.energyInc = increment
	p.energyDec = decrement
}

func (p *Player) RunToggled() bool { return p.runToggled }

func (p *Player) SetRunToggled(on bool) {
	if p.runToggled != on {
		p.runToggled = on
		p.Dirty = true
	}
}

func (p *Player) RunEnergy() int          { return p.energy.Value() }
func (p *Player) HasRunEnergy() bool       { return p.energy.Has() }
func (p *Player) RunEnergyIncrement() int { return p.energyInc }
func (p *Player) RunEnergyDecrement() int { return p.energyDec }

func (p *Player) IncreaseRunEnergy(n int) {
	before := p.energy.Value()
	p.energy.Increase(n)
	p.Dirty = p.Dirty || p.energy.Value() != before
}

func (p *Player) DecreaseRunEnergy(n int) {
	before := p.energy.Value()
	p.energy.Decrease(n)
	p.Dirty = p.Dirty || p.energy.Value() != before
}

// Teleport places the player, drops any pending path and reloads the region.
func (p *Player) Teleport(x, y int) {
	p.Position().Set(x, y)
	p.Movement.Reset()
	p.SendMapRegion()
	p.Dirty = true
}
