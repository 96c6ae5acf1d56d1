package entity

// MaxRunEnergy is the full run energy value.
const MaxRunEnergy = 100

// RunEnergy is a run stamina pool clamped to [0, MaxRunEnergy].
// The zero value is an empty pool.
type RunEnergy struct {
	value int
}

func NewRunEnergy(v int) RunEnergy {
	e := RunEnergy{}
	e.Set(v)
	return e
}

func (e *RunEnergy) Value() int { return e.value }

// Has reports whether any energy is left.
func (e *RunEnergy) Has() bool { return e.value > 0 }

func (e *RunEnergy) Full() bool { return e.value >= MaxRunEnergy }

func (e *RunEnergy) Set(v int) {
	e.value = clamp(v, 0, MaxRunEnergy)
}

func (e *RunEnergy) Increase(n int) {
	e.Set(e.value + n)
}

func (e *RunEnergy) Decrease(n int) {
	e.Set(e.value - n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
