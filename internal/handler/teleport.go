package handler

import (
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleTeleport processes C_TELEPORT: [x H][y H]. Staff only.
func HandleTeleport(sess *net.Session, r *packet.Reader, deps *Deps) {
	p := deps.World.PlayerBySession(sess.ID)
	if p == nil {
		return
	}
	x := int(r.ReadH())
	y := int(r.ReadH())
	if p.AccessLevel <= 0 {
		deps.Log.Warn("無權限的傳送請求",
			zap.String("account", p.AccountName),
			zap.Int("x", x), zap.Int("y", y),
		)
		return
	}
	deps.World.Teleport(p.ID, x, y)
	deps.Log.Info("GM 傳送", zap.String("account", p.AccountName), zap.Stringer("pos", p.Position()))
}
