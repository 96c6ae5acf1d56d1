package handler

import (
	"context"
	"strings"
	"time"

	"github.com/tickwalk/server/internal/core/event"
	"github.com/tickwalk/server/internal/movement"
	"github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"github.com/tickwalk/server/internal/persist"
	"github.com/tickwalk/server/internal/scripting"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

const maxNameLen = 32

// HandleLogin processes C_LOGIN: [name S][password S].
// Unknown accounts are created on first login together with a character at
// the configured start tile.
func HandleLogin(sess *net.Session, r *packet.Reader, deps *Deps) {
	name := strings.ToLower(strings.TrimSpace(r.ReadS()))
	password := r.ReadS()
	if name == "" || len(name) > maxNameLen || password == "" {
		sendLoginResult(sess, packet.LoginBadPassword)
		return
	}
	if deps.World.PlayerByName(name) != nil {
		deps.Log.Info("帳號已在線上", zap.String("account", name), zap.Uint64("session", sess.ID))
		sendLoginResult(sess, packet.LoginAlreadyOn)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	acc, err := deps.Accounts.Load(ctx, name)
	if err != nil {
		deps.Log.Error("讀取帳號失敗", zap.String("account", name), zap.Error(err))
		sendLoginResult(sess, packet.LoginServerError)
		return
	}
	if acc == nil {
		acc, err = deps.Accounts.Create(ctx, name, password, sess.Host)
		if err != nil {
			deps.Log.Error("建立帳號失敗", zap.String("account", name), zap.Error(err))
			sendLoginResult(sess, packet.LoginServerError)
			return
		}
		deps.Log.Info("自動建立帳號", zap.String("account", name))
	} else if !deps.Accounts.ValidatePassword(acc.PasswordHash, password) {
		deps.Log.Info("密碼錯誤", zap.String("account", name), zap.String("host", sess.Host))
		sendLoginResult(sess, packet.LoginBadPassword)
		return
	}
	if acc.Banned {
		sendLoginResult(sess, packet.LoginBanned)
		return
	}

	row, err := loadOrCreateCharacter(ctx, deps, name)
	if err != nil {
		deps.Log.Error("讀取角色失敗", zap.String("account", name), zap.Error(err))
		sendLoginResult(sess, packet.LoginServerError)
		return
	}
	if err := deps.Accounts.UpdateLastActive(ctx, name, sess.Host); err != nil {
		deps.Log.Warn("更新登入時間失敗", zap.String("account", name), zap.Error(err))
	}

	p := world.NewPlayer(sess.ID, sess, world.PlayerData{
		CharID:      row.ID,
		AccountName: name,
		Name:        name,
		AccessLevel: int(acc.AccessLevel),
		X:           row.X,
		Y:           row.Y,
		RunEnergy:   row.RunEnergy,
		RunToggled:  row.RunToggled,
		Weight:      row.Weight,
		Agility:     row.Agility,
	})
	rates := runEnergyRates(deps, p)
	p.SetRunEnergyRates(rates.Increment, rates.Decrement)
	deps.World.AddPlayer(p)

	sess.AccountName = name
	sess.SetState(packet.StateInWorld)

	sendLoginResult(sess, packet.LoginOK)
	p.SendMapRegion()
	p.SendRunEnergy()
	p.SendClientSetting(movement.ClientSettingRun, boolValue(p.RunToggled()))

	deps.Log.Info("玩家進入世界",
		zap.String("account", name),
		zap.Uint64("session", sess.ID),
		zap.Stringer("pos", p.Position()),
	)
	if deps.Bus != nil {
		event.Emit(deps.Bus, event.PlayerLoggedIn{EntityID: p.ID, AccountName: name})
	}
}

func loadOrCreateCharacter(ctx context.Context, deps *Deps, account string) (*persist.CharacterRow, error) {
	row, err := deps.Characters.Load(ctx, account)
	if err != nil || row != nil {
		return row, err
	}
	mc := deps.Config.Movement
	row = &persist.CharacterRow{
		AccountName: account,
		X:           mc.StartX,
		Y:           mc.StartY,
		RunEnergy:   mc.StartRunEnergy,
		Agility:     1,
	}
	if err := deps.Characters.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func runEnergyRates(deps *Deps, p *world.Player) scripting.RunEnergyRates {
	fallback := scripting.RunEnergyRates{
		Increment: deps.Config.Movement.RunEnergyIncrement,
		Decrement: deps.Config.Movement.RunEnergyDecrement,
	}
	if deps.Scripting == nil {
		return fallback
	}
	return deps.Scripting.CalcRunEnergyRates(scripting.RunEnergyContext{
		Weight:  p.Weight,
		Agility: p.Agility,
	}, fallback)
}

func sendLoginResult(sess *net.Session, code byte) {
	w := packet.NewWriter(packet.S_OPCODE_LOGIN_RESULT)
	w.WriteC(code)
	sess.Send(w.Bytes())
}

func boolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
