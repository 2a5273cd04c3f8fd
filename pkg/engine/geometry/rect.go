package geometry

// ClipRect describes the region of one draw pass in virtual (zoom-scaled)
// pixels, together with the zoom level that maps it back onto the screen.
type ClipRect struct {
	Left   int
	Top    int
	Width  int
	Height int
	Zoom   ZoomLevel
}

// Right returns the exclusive right edge.
func (c ClipRect) Right() int {
	return c.Left + c.Width
}

// Bottom returns the exclusive bottom edge.
func (c ClipRect) Bottom() int {
	return c.Top + c.Height
}

// Excludes reports whether the rectangle [left,right) x [top,bottom) lies
// entirely outside the clip region.
func (c ClipRect) Excludes(left, top, right, bottom int) bool {
	return left >= c.Right() || right <= c.Left || top >= c.Bottom() || bottom <= c.Top
}
