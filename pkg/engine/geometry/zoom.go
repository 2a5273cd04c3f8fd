package geometry

// ZoomLevel selects how far the view is zoomed out. Zoom only ever shrinks:
// one virtual (world-projected) pixel covers 1<<zoom screen pixels' worth of
// world, so a region at ZoomOut2x shows twice the world per screen pixel.
type ZoomLevel uint8

const (
	ZoomNormal ZoomLevel = iota
	ZoomOut2x
	ZoomOut4x
	ZoomOut8x

	ZoomMax = ZoomOut8x
)

// ScaleByZoom converts a length in screen pixels to virtual pixels.
func ScaleByZoom(v int, z ZoomLevel) int {
	return v << z
}

// UnscaleByZoom converts a length in virtual pixels to screen pixels.
func UnscaleByZoom(v int, z ZoomLevel) int {
	return v >> z
}
