// Package geometry provides the coordinate primitives for the isometric
// engine: screen points, world positions, 3D bounding boxes, clip rectangles
// and the fixed world-to-screen projection.
package geometry

// Point is a position in screen space, in pixels.
type Point struct {
	X int
	Y int
}

// Add returns the point translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the point translated by -o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// WorldPos is a position in world space. X and Y run along the two tile-grid
// axes, Z points up. All three are in world units (TileSize units per tile
// side, HeightStep units per height level).
type WorldPos struct {
	X int
	Y int
	Z int
}

// Add returns the position translated by o.
func (w WorldPos) Add(o WorldPos) WorldPos {
	return WorldPos{X: w.X + o.X, Y: w.Y + o.Y, Z: w.Z + o.Z}
}

// Sub returns the position translated by -o.
func (w WorldPos) Sub(o WorldPos) WorldPos {
	return WorldPos{X: w.X - o.X, Y: w.Y - o.Y, Z: w.Z - o.Z}
}
