package entity

// Body holds the movement state shared by every mobile entity: position,
// the facings applied during the current tick, and the loaded region.
// Player and NPC types embed it.
type Body struct {
	pos       Position
	primary   int
	secondary int
	region    Region
}

func NewBody(x, y int) Body {
	b := Body{
		pos:       Position{X: x, Y: y},
		primary:   NoDirection,
		secondary: NoDirection,
	}
	b.region = RegionFor(b.pos.Point())
	return b
}

func (b *Body) Position() *Position { return &b.pos }

func (b *Body) PrimaryDirection() int   { return b.primary }
func (b *Body) SecondaryDirection() int { return b.secondary }

func (b *Body) SetPrimaryDirection(dir int)   { b.primary = dir }
func (b *Body) SetSecondaryDirection(dir int) { b.secondary = dir }

// Moved reports whether a walk step was applied since the last ResetFacing.
func (b *Body) Moved() bool { return b.primary != NoDirection }

// ResetFacing clears the per-tick facings once they have been broadcast.
func (b *Body) ResetFacing() {
	b.primary = NoDirection
	b.secondary = NoDirection
}

func (b *Body) CurrentRegion() Region { return b.region }

// Recenter moves the loaded region so it is centred on the current position.
func (b *Body) Recenter() Region {
	b.region = RegionFor(b.pos.Point())
	return b.region
}
