package handler

import (
	"context"

	"github.com/tickwalk/server/internal/config"
	"github.com/tickwalk/server/internal/core/event"
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"github.com/tickwalk/server/internal/persist"
	"github.com/tickwalk/server/internal/scripting"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// AccountStore is the account storage used at login. *persist.AccountRepo
// implements it.
type AccountStore interface {
	Load(ctx context.Context, name string) (*persist.AccountRow, error)
	Create(ctx context.Context, name, rawPassword, host string) (*persist.AccountRow, error)
	ValidatePassword(hash, rawPassword string) bool
	UpdateLastActive(ctx context.Context, name, host string) error
}

// CharacterStore is the character storage used at login and save.
// *persist.CharacterRepo implements it.
type CharacterStore interface {
	Load(ctx context.Context, accountName string) (*persist.CharacterRow, error)
	Create(ctx context.Context, c *persist.CharacterRow) error
	Save(ctx context.Context, c *persist.CharacterRow) error
}

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Accounts   AccountStore
	Characters CharacterStore
	Config     *config.Config
	Log        *zap.Logger
	World      *world.State
	Scripting  *scripting.Engine // nil = configured run energy rates
	Bus        *event.Bus
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry[*net.Session], deps *Deps) {
	reg.Register(packet.C_OPCODE_LOGIN,
		[]packet.SessionState{packet.StateConnected},
		func(sess *net.Session, r *packet.Reader) {
			HandleLogin(sess, r, deps)
		},
	)

	inWorld := []packet.SessionState{packet.StateInWorld}

	reg.Register(packet.C_OPCODE_WALK, inWorld,
		func(sess *net.Session, r *packet.Reader) {
			HandleWalk(sess, r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_TOGGLE_RUN, inWorld,
		func(sess *net.Session, r *packet.Reader) {
			HandleToggleRun(sess, r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_TELEPORT, inWorld,
		func(sess *net.Session, r *packet.Reader) {
			HandleTeleport(sess, r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_LOGOUT,
		[]packet.SessionState{packet.StateConnected, packet.StateInWorld},
		func(sess *net.Session, r *packet.Reader) {
			HandleLogout(sess, r, deps)
		},
	)
}

// RowFromPlayer converts a player's persisted fields to a character row.
func RowFromPlayer(p *world.Player) *persist.CharacterRow {
	d := p.Data()
	return &persist.CharacterRow{
		ID:          d.CharID,
		AccountName: d.AccountName,
		X:           d.X,
		Y:           d.Y,
		RunEnergy:   d.RunEnergy,
		RunToggled:  d.RunToggled,
		Weight:      d.Weight,
		Agility:     d.Agility,
	}
}
