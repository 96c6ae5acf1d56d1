package handler

import (
	"github.com/tickwalk/server/internal/entity"
	"github.com/tickwalk/server/internal/movement"
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"go.uber.org/zap"
)

const walkFlagRun = 0x01

// HandleWalk processes C_WALK: [flags C][count C] then count × [x H][y H].
// The new path replaces any pending one and starts moving on the next tick.
func HandleWalk(sess *net.Session, r *packet.Reader, deps *Deps) {
	p := deps.World.PlayerBySession(sess.ID)
	if p == nil {
		return
	}
	flags := r.ReadC()
	count := int(r.ReadC())
	if count == 0 || r.Remaining() < count*4 {
		deps.Log.Debug("無效的移動封包",
			zap.Uint64("session", sess.ID),
			zap.Int("count", count),
			zap.Int("remaining", r.Remaining()),
		)
		return
	}

	h := p.Movement
	h.Reset()
	for i := 0; i < count; i++ {
		x := int(r.ReadH())
		y := int(r.ReadH())
		h.AddToPath(entity.Point{X: x, Y: y})
	}
	h.Finish()
	h.SetRunPath(flags&walkFlagRun != 0)
}

// HandleToggleRun processes C_TOGGLE_RUN: [on C]. The new state is echoed
// back as client setting 173.
func HandleToggleRun(sess *net.Session, r *packet.Reader, deps *Deps) {
	p := deps.World.PlayerBySession(sess.ID)
	if p == nil {
		return
	}
	on := r.ReadC() != 0
	p.SetRunToggled(on)
	p.SendClientSetting(movement.ClientSettingRun, boolValue(on))
}
