package entity

import "testing"

func TestDirectionRoundTrip(t *testing.T) {
	for dir := 0; dir < 8; dir++ {
		got := Direction(DirectionDeltaX[dir], DirectionDeltaY[dir])
		if got != dir {
			t.Errorf("Direction(%d,%d) = %d, want %d", DirectionDeltaX[dir], DirectionDeltaY[dir], got, dir)
		}
	}
}

func TestDirectionUsesSignOnly(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   int
	}{
		{0, 0, NoDirection},
		{5, 0, 4},
		{-7, 0, 3},
		{0, 3, 1},
		{0, -2, 6},
		{4, 9, 2},
		{-1, -8, 5},
		{2, -2, 7},
		{-3, 3, 0},
	}
	for _, tt := range tests {
		if got := Direction(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Direction(%d,%d) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestPositionStep(t *testing.T) {
	p := NewPosition(10, 10)
	p.Step(2)
	if p.X != 11 || p.Y != 11 {
		t.Fatalf("after NE step: %s", p)
	}
	p.Step(NoDirection)
	if p.X != 11 || p.Y != 11 {
		t.Fatalf("NoDirection moved position: %s", p)
	}
	p.Step(6)
	if p.X != 11 || p.Y != 10 {
		t.Fatalf("after S step: %s", p)
	}
}

func TestRunEnergyClamps(t *testing.T) {
	e := NewRunEnergy(150)
	if e.Value() != MaxRunEnergy {
		t.Fatalf("NewRunEnergy(150) = %d", e.Value())
	}
	e.Decrease(250)
	if e.Value() != 0 || e.Has() {
		t.Fatalf("after overdraw: %d has=%v", e.Value(), e.Has())
	}
	e.Increase(30)
	e.Increase(80)
	if !e.Full() {
		t.Fatalf("expected full, got %d", e.Value())
	}
}

func TestRegionReloadBounds(t *testing.T) {
	r := RegionFor(Point{X: 3200, Y: 3200})
	if r.X != 394 || r.Y != 394 {
		t.Fatalf("RegionFor = %+v", r)
	}
	ox, oy := r.X*SectorSize, r.Y*SectorSize

	tests := []struct {
		name string
		dx   int
		dy   int
		want bool
	}{
		{"centre", 48, 48, false},
		{"x low edge inside", 16, 48, false},
		{"x low edge outside", 15, 48, true},
		{"x high edge inside", 87, 48, false},
		{"x high edge outside", 88, 48, true},
		{"y high edge inclusive", 48, 88, false},
		{"y high edge outside", 48, 89, true},
		{"y low edge outside", 48, 15, true},
	}
	for _, tt := range tests {
		got := r.NeedsReload(Point{X: ox + tt.dx, Y: oy + tt.dy})
		if got != tt.want {
			t.Errorf("%s: NeedsReload = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRegionForNegativeCoordinates(t *testing.T) {
	r := RegionFor(Point{X: -1, Y: -9})
	if r.X != -7 || r.Y != -8 {
		t.Fatalf("RegionFor(-1,-9) = %+v", r)
	}
}

func TestBodyFacing(t *testing.T) {
	b := NewBody(100, 100)
	if b.Moved() {
		t.Fatal("new body should not report movement")
	}
	b.SetPrimaryDirection(4)
	b.SetSecondaryDirection(4)
	if !b.Moved() {
		t.Fatal("expected Moved after primary set")
	}
	b.ResetFacing()
	if b.PrimaryDirection() != NoDirection || b.SecondaryDirection() != NoDirection {
		t.Fatal("ResetFacing did not clear facings")
	}
}
