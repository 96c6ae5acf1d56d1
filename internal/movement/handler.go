package movement

import "github.com/tickwalk/server/internal/entity"

// ClientSettingRun is the client setting that drives the run button.
const ClientSettingRun = 173

// Mobile is anything with a position that a path queue can move.
type Mobile interface {
	Position() *entity.Position
	SetPrimaryDirection(dir int)
	SetSecondaryDirection(dir int)
	CurrentRegion() entity.Region
}

// Controllable is a Mobile with a client attached: it owns run energy and a
// run toggle, and receives notifications when either changes or when it walks
// far enough to need a new map region.
type Controllable interface {
	Mobile

	RunToggled() bool
	SetRunToggled(on bool)

	RunEnergy() int
	HasRunEnergy() bool
	IncreaseRunEnergy(n int)
	DecreaseRunEnergy(n int)
	RunEnergyIncrement() int
	RunEnergyDecrement() int

	SendClientSetting(id, value int)
	SendRunEnergy()
	SendMapRegion()
}

// Handler is the path queue of a single Mobile. It consumes one walk step and,
// when running, one run step per tick.
//
// A Handler is owned by the game loop goroutine; it is not safe for
// concurrent use.
type Handler struct {
	mob     Mobile
	ctl     Controllable // nil for entities without a client
	steps   stepQueue
	runPath bool
}

func NewHandler(mob Mobile) *Handler {
	h := &Handler{mob: mob}
	h.ctl, _ = mob.(Controllable)
	return h
}

// Reset discards the pending path and starts a new one at the current
// position. The per-path run flag is cleared.
func (h *Handler) Reset() {
	h.runPath = false
	h.steps.clear()
	p := h.mob.Position()
	h.steps.push(step{x: p.X, y: p.Y, dir: entity.NoDirection})
}

// Finish drops the head of the queue once its arrival has been handled.
func (h *Handler) Finish() {
	h.steps.pop()
}

// AddToPath queues unit steps along a straight line from the end of the
// current path to target. Each axis advances at most one tile per step, so
// the line takes max(|dx|,|dy|) steps. Steps past capacity are dropped.
func (h *Handler) AddToPath(target entity.Point) {
	if h.steps.len() == 0 {
		h.Reset()
	}
	last, _ := h.steps.peekBack()
	dx := target.X - last.x
	dy := target.Y - last.y

	n := max(abs(dx), abs(dy))
	for i := 0; i < n; i++ {
		dx = towardZero(dx)
		dy = towardZero(dy)
		h.addStep(target.X-dx, target.Y-dy)
	}
}

func (h *Handler) addStep(x, y int) {
	if h.steps.full() {
		return
	}
	last, _ := h.steps.peekBack()
	dir := entity.Direction(x-last.x, y-last.y)
	if dir == entity.NoDirection {
		return
	}
	h.steps.push(step{x: x, y: y, dir: dir})
}

// Tick advances the mobile along its path. It never fails; the error return
// satisfies the tick contract.
func (h *Handler) Tick() error {
	walk, hasWalk := h.steps.pop()

	var run step
	hasRun := false
	if h.ctl != nil {
		if h.ctl.RunToggled() || h.runPath {
			if h.ctl.HasRunEnergy() {
				run, hasRun = h.steps.pop()
			} else {
				h.ctl.SendClientSetting(ClientSettingRun, 0)
				h.ctl.SetRunToggled(false)
				h.runPath = false
			}
		}
	} else if h.runPath {
		run, hasRun = h.steps.pop()
	}

	pos := h.mob.Position()
	if hasWalk && walk.dir != entity.NoDirection {
		pos.Step(walk.dir)
		h.mob.SetPrimaryDirection(walk.dir)
	}

	if hasRun && run.dir != entity.NoDirection {
		pos.Step(run.dir)
		h.mob.SetSecondaryDirection(run.dir)
		if h.ctl != nil {
			h.ctl.DecreaseRunEnergy(h.ctl.RunEnergyDecrement())
			h.ctl.SendRunEnergy()
		}
	} else if h.ctl != nil && h.ctl.RunEnergy() < entity.MaxRunEnergy {
		h.ctl.IncreaseRunEnergy(h.ctl.RunEnergyIncrement())
		h.ctl.SendRunEnergy()
	}

	if h.ctl != nil && h.mob.CurrentRegion().NeedsReload(pos.Point()) {
		h.ctl.SendMapRegion()
	}
	return nil
}

func (h *Handler) RunPath() bool { return h.runPath }

// SetRunPath makes the current path run regardless of the run toggle.
func (h *Handler) SetRunPath(run bool) { h.runPath = run }

// Len returns the number of queued steps, sentinel included.
func (h *Handler) Len() int { return h.steps.len() }

// Idle reports whether no movement is pending.
func (h *Handler) Idle() bool {
	switch h.steps.len() {
	case 0:
		return true
	case 1:
		s, _ := h.steps.peekFront()
		return s.dir == entity.NoDirection
	}
	return false
}

// Destination returns the last queued tile.
func (h *Handler) Destination() (entity.Point, bool) {
	s, ok := h.steps.peekBack()
	return s.point(), ok
}

func towardZero(v int) int {
	switch {
	case v < 0:
		return v + 1
	case v > 0:
		return v - 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
