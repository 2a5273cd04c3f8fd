package geometry

// Box is a 3D axis-aligned bounding box in world units, both corners
// included. It approximates the volume a sprite occupies for depth
// comparisons. Min never exceeds Max on any axis; degenerate extents are
// stored as 1-unit slabs.
type Box struct {
	XMin, XMax int
	YMin, YMax int
	ZMin, ZMax int
}

// NewBox builds a box from an origin, positive extents and negative offsets,
// matching how sortable sprites describe their volume: the box spans
// (origin+offset) .. (origin+max(offset,extent)-1) per axis, clamped so that
// Min <= Max even for zero-thickness slices.
func NewBox(origin WorldPos, w, h, dz int, offX, offY, offZ int) Box {
	b := Box{
		XMin: origin.X + offX, XMax: origin.X + max(offX, w) - 1,
		YMin: origin.Y + offY, YMax: origin.Y + max(offY, h) - 1,
		ZMin: origin.Z + offZ, ZMax: origin.Z + max(offZ, dz) - 1,
	}
	b.XMax = max(b.XMax, b.XMin)
	b.YMax = max(b.YMax, b.YMin)
	b.ZMax = max(b.ZMax, b.ZMin)
	return b
}

// Overlaps reports whether the boxes overlap on all three axes at once.
// Overlapping boxes are subject to the depth-ordering constraint.
func (b Box) Overlaps(o Box) bool {
	return b.XMin <= o.XMax && o.XMin <= b.XMax &&
		b.YMin <= o.YMax && o.YMin <= b.YMax &&
		b.ZMin <= o.ZMax && o.ZMin <= b.ZMax
}

// Sum is the depth key for overlapping boxes: of two overlapping boxes the
// one with the smaller coordinate sum is further from the camera and paints
// first.
func (b Box) Sum() int {
	return b.XMin + b.XMax + b.YMin + b.YMax + b.ZMin + b.ZMax
}
