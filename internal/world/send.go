package world

import (
	"github.com/tickwalk/server/internal/entity"
	"github.com/tickwalk/server/internal/net/packet"
)

func (p *Player) send(w *packet.Writer) {
	if p.sender != nil {
		p.sender.Send(w.Bytes())
	}
}

func (p *Player) SendClientSetting(id, value int) {
	w := packet.NewWriter(packet.S_OPCODE_CLIENT_SETTING)
	w.WriteH(uint16(id))
	w.WriteD(int32(value))
	p.send(w)
}

func (p *Player) SendRunEnergy() {
	w := packet.NewWriter(packet.S_OPCODE_RUN_ENERGY)
	w.WriteC(byte(p.energy.Value()))
	p.send(w)
}

// SendMapRegion re-centres the loaded region on the player and tells the
// client which sector is now at the centre.
func (p *Player) SendMapRegion() {
	r := p.Recenter()
	w := packet.NewWriter(packet.S_OPCODE_MAP_REGION)
	w.WriteH(uint16(r.X + entity.RegionCenterOffset))
	w.WriteH(uint16(r.Y + entity.RegionCenterOffset))
	p.send(w)
}

func (p *Player) SendMessage(text string) {
	w := packet.NewWriter(packet.S_OPCODE_MESSAGE)
	w.WriteS(text)
	p.send(w)
}

func (p *Player) SendLoginResult(code byte) {
	w := packet.NewWriter(packet.S_OPCODE_LOGIN_RESULT)
	w.WriteC(code)
	p.send(w)
}

// SendMove tells the player that a mobile stepped this tick.
func (p *Player) SendMove(m Moved) {
	pos := m.Position()
	w := packet.NewWriter(packet.S_OPCODE_MOVE)
	w.WriteD(int32(m.EntityID().Index()))
	w.WriteH(uint16(pos.X))
	w.WriteH(uint16(pos.Y))
	w.WriteC(facingByte(m.PrimaryDirection()))
	w.WriteC(facingByte(m.SecondaryDirection()))
	p.send(w)
}

func facingByte(dir int) byte {
	if dir == entity.NoDirection {
		return 0xFF
	}
	return byte(dir)
}
