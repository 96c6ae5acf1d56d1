package system

import (
	"context"
	"time"

	coresys "github.com/tickwalk/server/internal/core/system"
	"github.com/tickwalk/server/internal/handler"
	"github.com/tickwalk/server/internal/persist"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// CharacterSaver writes characters. *persist.CharacterRepo implements it.
type CharacterSaver interface {
	Save(ctx context.Context, c *persist.CharacterRow) error
	SaveAll(ctx context.Context, rows []persist.CharacterRow) error
}

// PersistenceSystem periodically saves players whose state changed.
// Phase 5 (Persist).
type PersistenceSystem struct {
	world     *world.State
	chars     CharacterSaver
	log       *zap.Logger
	tickCount int
	interval  int // auto-save every N ticks
}

func NewPersistenceSystem(ws *world.State, chars CharacterSaver, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		chars:    chars,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.savePlayers(true)
}

// SaveAllPlayers persists every online player, ignoring dirty flags.
// Called on shutdown.
func (s *PersistenceSystem) SaveAllPlayers() {
	s.savePlayers(false)
}

// SavePlayer persists one player immediately. Called on disconnect.
func (s *PersistenceSystem) SavePlayer(p *world.Player) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.chars.Save(ctx, handler.RowFromPlayer(p)); err != nil {
		s.log.Error("角色存檔失敗", zap.String("account", p.AccountName), zap.Error(err))
		return
	}
	p.Dirty = false
}

func (s *PersistenceSystem) savePlayers(dirtyOnly bool) {
	var saved []*world.Player
	var rows []persist.CharacterRow
	for _, p := range s.world.Players() {
		if dirtyOnly && !p.Dirty {
			continue
		}
		saved = append(saved, p)
		rows = append(rows, *handler.RowFromPlayer(p))
	}
	if len(rows) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.chars.SaveAll(ctx, rows); err != nil {
		s.log.Error("自動存檔失敗", zap.Int("players", len(rows)), zap.Error(err))
		return
	}
	for _, p := range saved {
		p.Dirty = false
	}
	s.log.Debug("自動存檔完成", zap.Int("players", len(rows)))
}
