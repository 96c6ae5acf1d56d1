package entity

import "fmt"

// Compass deltas indexed by direction (0-7). Y grows northwards.
//
//	0 1 2
//	3 . 4
//	5 6 7
var (
	DirectionDeltaX = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	DirectionDeltaY = [8]int{1, 1, 1, 0, 0, -1, -1, -1}
)

// NoDirection marks a step that does not move ("stand here").
const NoDirection = -1

// directionBySign maps (sign(dx)+1, sign(dy)+1) to a compass index.
// Built from the delta tables so both stay in lockstep.
var directionBySign = func() [3][3]int {
	var t [3][3]int
	for i := range t {
		for j := range t[i] {
			t[i][j] = NoDirection
		}
	}
	for dir := 0; dir < 8; dir++ {
		t[DirectionDeltaX[dir]+1][DirectionDeltaY[dir]+1] = dir
	}
	return t
}()

// Direction returns the compass index for a signed delta, or NoDirection when
// both components are zero. Only the signs of dx and dy are considered.
func Direction(dx, dy int) int {
	return directionBySign[sign(dx)+1][sign(dy)+1]
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Point is an immutable map coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Position is an entity's mutable map coordinate.
type Position struct {
	X int
	Y int
}

func NewPosition(x, y int) *Position {
	return &Position{X: x, Y: y}
}

// Move applies a delta in place.
func (p *Position) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Step moves one tile in the given compass direction. NoDirection is a no-op.
func (p *Position) Step(dir int) {
	if dir < 0 || dir > 7 {
		return
	}
	p.Move(DirectionDeltaX[dir], DirectionDeltaY[dir])
}

// Set places the position at (x, y).
func (p *Position) Set(x, y int) {
	p.X = x
	p.Y = y
}

func (p *Position) Point() Point { return Point{X: p.X, Y: p.Y} }

func (p *Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
