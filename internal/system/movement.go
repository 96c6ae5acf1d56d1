package system

import (
	"time"

	coresys "github.com/tickwalk/server/internal/core/system"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// MovementSystem advances every path queue by one tick. Phase 2 (Update),
// registered after the task scheduler so paths queued by tasks move at once.
type MovementSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewMovementSystem(ws *world.State, log *zap.Logger) *MovementSystem {
	return &MovementSystem{world: ws, log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(_ time.Duration) {
	for _, p := range s.world.Players() {
		if err := p.Movement.Tick(); err != nil {
			s.log.Warn("玩家移動失敗", zap.String("account", p.AccountName), zap.Error(err))
		}
	}
	for _, n := range s.world.Npcs() {
		if err := n.Movement.Tick(); err != nil {
			s.log.Warn("NPC 移動失敗", zap.String("npc", n.Name), zap.Error(err))
		}
	}
}
