package geometry

// World-unit constants. A tile is TileSize x TileSize world units; one height
// level is HeightStep world units. Under the projection below this makes a
// flat tile 4*TileSize pixels wide and 2*TileSize pixels tall on screen.
const (
	TileSize   = 16
	HeightStep = 8
)

// Project maps a world position onto the screen with the fixed isometric
// transform: a step along world X moves down-left, a step along world Y moves
// down-right, and Z moves straight up.
func Project(x, y, z int) Point {
	return Point{
		X: (y - x) * 2,
		Y: y + x - z,
	}
}

// ProjectPos is Project for a WorldPos.
func ProjectPos(w WorldPos) Point {
	return Project(w.X, w.Y, w.Z)
}

// Unproject inverts Project for points on the z = 0 plane. It is the basis
// for turning a screen rectangle back into a range of visible tiles; callers
// must account for terrain height themselves.
func Unproject(x, y int) WorldPos {
	return WorldPos{
		X: (y*2 - x) >> 2,
		Y: (y*2 + x) >> 2,
	}
}
