package system

import (
	"github.com/tickwalk/server/internal/config"
	"github.com/tickwalk/server/internal/core/ecs"
	"github.com/tickwalk/server/internal/core/event"
	"github.com/tickwalk/server/internal/task"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// SubscribeEvents wires the game's reactions to bus events.
func SubscribeEvents(bus *event.Bus, ws *world.State, sched *task.Scheduler, cfg config.TasksConfig, log *zap.Logger) {
	event.Subscribe(bus, func(e event.PlayerLoggedIn) {
		p := ws.Player(e.EntityID)
		if p == nil || cfg.WelcomeMessage == "" {
			return
		}
		msg := cfg.WelcomeMessage
		sched.Submit(task.Once(cfg.WelcomeDelay, p, func(*task.Task[struct{}]) error {
			p.SendMessage(msg)
			return nil
		}))
	})

	event.Subscribe(bus, func(e event.PlayerDisconnected) {
		if n := sched.CancelOwner(e.EntityID); n > 0 {
			log.Debug("取消離線玩家的任務", zap.Uint64("session", e.SessionID), zap.Int("tasks", n))
		}
	})

	event.Subscribe(bus, func(e event.TaskFailed) {
		log.Warn("任務執行失敗",
			zap.String("owner", ownerName(ws, e.Owner)),
			zap.Error(e.Err),
		)
	})
}

func ownerName(ws *world.State, id ecs.EntityID) string {
	if id.IsZero() {
		return "world"
	}
	if p := ws.Player(id); p != nil {
		return p.Name
	}
	if n := ws.Npc(id); n != nil {
		return n.Name
	}
	return "gone"
}
