package handler

import (
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleLogout processes C_LOGOUT. The session is closed here; the input
// system saves and removes the player when it sees the closed session.
func HandleLogout(sess *net.Session, _ *packet.Reader, deps *Deps) {
	deps.Log.Info("玩家登出", zap.Uint64("session", sess.ID), zap.String("account", sess.AccountName))
	sess.Close()
}
