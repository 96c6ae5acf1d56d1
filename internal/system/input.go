package system

import (
	"time"

	"github.com/tickwalk/server/internal/core/event"
	coresys "github.com/tickwalk/server/internal/core/system"
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

// SessionSource delivers newly admitted sessions. *net.Server implements it.
type SessionSource interface {
	NewSessions() <-chan *net.Session
}

// InputSystem drains packet queues from all sessions and dispatches them
// through the packet registry. Phase 0 (Input).
type InputSystem struct {
	source     SessionSource
	registry   *packet.Registry[*net.Session]
	store      *net.SessionStore
	maxPerTick int
	world      *world.State
	saver      *PersistenceSystem
	bus        *event.Bus
	log        *zap.Logger
}

func NewInputSystem(
	source SessionSource,
	registry *packet.Registry[*net.Session],
	store *net.SessionStore,
	maxPerTick int,
	ws *world.State,
	saver *PersistenceSystem,
	bus *event.Bus,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		source:     source,
		registry:   registry,
		store:      store,
		maxPerTick: maxPerTick,
		world:      ws,
		saver:      saver,
		bus:        bus,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.acceptNew()

	for _, sess := range s.store.All() {
		if sess.IsClosed() {
			s.handleDisconnect(sess)
			continue
		}
		s.drain(sess)
	}
}

func (s *InputSystem) acceptNew() {
	for {
		select {
		case sess := <-s.source.NewSessions():
			s.store.Add(sess)
		default:
			return
		}
	}
}

func (s *InputSystem) drain(sess *net.Session) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case data := <-sess.InQueue:
			if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
				s.log.Debug("封包分派錯誤",
					zap.Uint64("session", sess.ID),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}

// handleDisconnect saves and removes the session's player, if any.
func (s *InputSystem) handleDisconnect(sess *net.Session) {
	s.store.Remove(sess.ID)
	p := s.world.PlayerBySession(sess.ID)
	if p == nil {
		return
	}
	if s.saver != nil {
		s.saver.SavePlayer(p)
	}
	s.world.RemovePlayer(p.ID)
	if s.bus != nil {
		event.Emit(s.bus, event.PlayerDisconnected{EntityID: p.ID, SessionID: sess.ID})
	}
	s.log.Info("玩家離線", zap.Uint64("session", sess.ID), zap.String("account", p.AccountName))
}
