package entity

// SectorSize is the width of a region sector in map units.
const SectorSize = 8

// RegionCenterOffset is the number of sectors between a region's origin and
// its centre sector.
const RegionCenterOffset = 6

// Region is the origin of the map area currently loaded by a client,
// measured in 8-unit sectors. The loaded area spans 13x13 sectors with the
// entity's own sector in the middle.
type Region struct {
	X int
	Y int
}

// RegionFor returns the region centred on pos.
func RegionFor(pos Point) Region {
	return Region{
		X: (pos.X >> 3) - RegionCenterOffset,
		Y: (pos.Y >> 3) - RegionCenterOffset,
	}
}

// Offset returns pos relative to the region origin in map units.
func (r Region) Offset(pos Point) (dx, dy int) {
	return pos.X - r.X*SectorSize, pos.Y - r.Y*SectorSize
}

// NeedsReload reports whether pos has drifted close enough to the edge of the
// loaded area that the client must receive a new one.
// The Y upper bound is inclusive, matching the client's own check.
func (r Region) NeedsReload(pos Point) bool {
	dx, dy := r.Offset(pos)
	return dx < 16 || dx >= 88 || dy < 16 || dy > 88
}
