package viewport

import (
	"image/color"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
)

// Region chunking: a single draw pass never covers more virtual pixels than
// this, so the draw-list memory per pass stays bounded. Requests over the
// budget are bisected along their longer axis.
const regionPixelBudget = 180000

// Tile visibility margins in virtual pixels: how far a tile's drawings may
// extend above its north corner (tall structures) and below it (steep
// slopes).
const (
	maxTileExtentTop    = 200
	maxTileExtentBottom = 2*geometry.TileSize + 2*geometry.HeightStep
)

// Painter consumes one resolved region: first the ground sprites, then the
// depth-sorted parent sprites each followed by its child chain, then the
// text overlays. Sprite coordinates are in virtual pixels; the painter
// unscales them with the clip's zoom level.
type Painter interface {
	// BeginRegion announces the clip rectangle the following calls belong to.
	BeginRegion(clip geometry.ClipRect)

	// DrawSprite blits one sprite at a virtual pixel position.
	DrawSprite(img sprites.SpriteID, pal sprites.PaletteID, x, y int, sub *sprites.SubRect)

	// DrawBoxOutline draws a debug outline of a bounding box's top face,
	// given the projected front corner and the offsets to the left, right
	// and downward corners.
	DrawBoxOutline(corner geometry.Point, left, right, down geometry.Point)

	// DrawText draws a translated overlay string anchored at a virtual pixel
	// position. The position scales with zoom, the glyphs do not, so labels
	// stay legible when zoomed out.
	DrawText(x, y, width int, key string, args []any, colour color.RGBA, frame bool)

	// EndRegion closes the region opened by BeginRegion.
	EndRegion()
}

// TileInfo describes the tile a draw callback is invoked for.
type TileInfo struct {
	TX, TY int // tile grid coordinates
	X, Y   int // tile origin in world units
	Z      int // ground height at the origin, in world units
	Inside bool
}

// Scene supplies the world content of a viewport. DrawTile and DrawObjects
// receive the viewport's draw list and must only talk to it through its
// accumulator methods; triggering another region draw from a callback is a
// contract violation.
type Scene interface {
	// MapSize returns the map dimensions in tiles.
	MapSize() (w, h int)

	// TileHeight returns the ground height in world units at the given tile,
	// used to decide tile visibility. Tiles outside the map are height 0.
	TileHeight(tx, ty int) int

	// DrawTile adds the sprites of one visible tile.
	DrawTile(d *DrawList, ti TileInfo)

	// DrawObjects adds dynamic objects (anything not tied to a single tile)
	// that intersect the clip rectangle.
	DrawObjects(d *DrawList, clip geometry.ClipRect)
}

// Viewport is one isometric view onto a scene. The zero value is not usable;
// use New. A viewport owns its draw list and is strictly single-threaded:
// a Draw call runs the whole collect/sort/paint pipeline to completion and
// must not be re-entered.
type Viewport struct {
	// Screen rectangle the viewport occupies.
	Left, Top     int
	Width, Height int

	// Virtual (zoom-scaled) world-projected coordinates of the top-left
	// corner.
	VirtualLeft, VirtualTop int

	Zoom geometry.ZoomLevel

	// DrawBoundingBoxes enables the debug overlay that outlines every
	// sorted sprite's bounding box.
	DrawBoundingBoxes bool

	scene Scene
	list  *DrawList
}

// New returns a viewport over scene covering the given screen rectangle.
func New(scene Scene, atlas *sprites.Atlas, left, top, width, height int) *Viewport {
	return &Viewport{
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		scene:  scene,
		list:   NewDrawList(atlas),
	}
}

// VirtualWidth returns the viewport width in virtual pixels.
func (vp *Viewport) VirtualWidth() int {
	return geometry.ScaleByZoom(vp.Width, vp.Zoom)
}

// VirtualHeight returns the viewport height in virtual pixels.
func (vp *Viewport) VirtualHeight() int {
	return geometry.ScaleByZoom(vp.Height, vp.Zoom)
}

// CenterOn scrolls the viewport so the given world position projects to its
// center.
func (vp *Viewport) CenterOn(pos geometry.WorldPos) {
	pt := geometry.ProjectPos(pos)
	vp.VirtualLeft = pt.X - vp.VirtualWidth()/2
	vp.VirtualTop = pt.Y - vp.VirtualHeight()/2
}

// Draw renders the part of the viewport covered by the given screen
// rectangle onto p. The rectangle is clamped to the viewport; oversized
// regions are split recursively so each pass stays within the pixel budget.
func (vp *Viewport) Draw(p Painter, left, top, right, bottom int) {
	if right <= vp.Left || bottom <= vp.Top {
		return
	}
	if left >= vp.Left+vp.Width || top >= vp.Top+vp.Height {
		return
	}

	left = max(left, vp.Left)
	top = max(top, vp.Top)
	right = min(right, vp.Left+vp.Width)
	bottom = min(bottom, vp.Top+vp.Height)

	vp.drawChunked(p, left, top, right, bottom)
}

// drawChunked bisects the screen rectangle along its longer axis until the
// zoom-scaled area fits the pixel budget, then runs one full pipeline pass
// per leaf. Chunking only subdivides work, it never reorders or drops it.
func (vp *Viewport) drawChunked(p Painter, left, top, right, bottom int) {
	w := geometry.ScaleByZoom(right-left, vp.Zoom)
	h := geometry.ScaleByZoom(bottom-top, vp.Zoom)
	if int64(w)*int64(h) > regionPixelBudget {
		if bottom-top > right-left {
			t := (top + bottom) / 2
			vp.drawChunked(p, left, top, right, t)
			vp.drawChunked(p, left, t, right, bottom)
		} else {
			t := (left + right) / 2
			vp.drawChunked(p, left, top, t, bottom)
			vp.drawChunked(p, t, top, right, bottom)
		}
		return
	}

	vp.doDraw(p, geometry.ClipRect{
		Left:   geometry.ScaleByZoom(left-vp.Left, vp.Zoom) + vp.VirtualLeft,
		Top:    geometry.ScaleByZoom(top-vp.Top, vp.Zoom) + vp.VirtualTop,
		Width:  geometry.ScaleByZoom(right-left, vp.Zoom),
		Height: geometry.ScaleByZoom(bottom-top, vp.Zoom),
		Zoom:   vp.Zoom,
	})
}

// doDraw runs the pipeline for one leaf region: accumulate, sort, paint.
// All draw-list state is cleared before the next pass reuses it; nothing
// survives the call.
func (vp *Viewport) doDraw(p Painter, clip geometry.ClipRect) {
	d := vp.list
	d.reset(clip)
	d.drawBoxes = vp.DrawBoundingBoxes

	vp.addLandscape()
	vp.scene.DrawObjects(d, clip)

	p.BeginRegion(clip)

	for i := range d.ground {
		g := &d.ground[i]
		p.DrawSprite(g.Image, g.Pal, g.X, g.Y, g.Sub)
	}

	order := sortParentSprites(d.parents)
	for _, pi := range order {
		ps := &d.parents[pi]
		if ps.Image.Base() != sprites.EmptyBoundingBox {
			p.DrawSprite(ps.Image, ps.Pal, ps.X, ps.Y, ps.Sub)
		}
		for ci := ps.FirstChild; ci != noChild; ci = d.children[ci].Next {
			cs := &d.children[ci]
			p.DrawSprite(cs.Image, cs.Pal, ps.Left+cs.X, ps.Top+cs.Y, cs.Sub)
		}
	}

	if vp.DrawBoundingBoxes {
		for _, pi := range order {
			b := d.parents[pi].Box
			corner := geometry.Project(b.XMax+1, b.YMax+1, b.ZMax+1) // top front corner
			left := geometry.Project(b.XMin, b.YMax+1, b.ZMax+1).Sub(corner)
			right := geometry.Project(b.XMax+1, b.YMin, b.ZMax+1).Sub(corner)
			down := geometry.Project(b.XMax+1, b.YMax+1, b.ZMin).Sub(corner)
			p.DrawBoxOutline(corner, left, right, down)
		}
	}

	for i := range d.overlays {
		ss := &d.overlays[i]
		p.DrawText(ss.X, ss.Y, ss.Width, ss.Key, ss.Args, ss.Colour, ss.Frame)
	}

	p.EndRegion()
}

// addLandscape walks the tiles that could intersect the clip rectangle and
// invokes the scene's tile callback for each. Tiles are visited column by
// column along the projected diamond grid; the row loop keeps going as long
// as some tile in the row could still reach into the region from below or a
// tall structure could reach into it from above.
func (vp *Viewport) addLandscape() {
	d := vp.list
	clip := d.clip

	upperLeft := geometry.Unproject(clip.Left, clip.Top)
	upperRight := geometry.Unproject(clip.Right(), clip.Top)

	// Screen columns overlap neighbouring tile columns by half a tile, so
	// pad by one tile column on each side (plus one more for rounding of
	// negative coordinates).
	leftColumn := (upperLeft.Y-upperLeft.X)/geometry.TileSize - 2
	rightColumn := (upperRight.Y-upperRight.X)/geometry.TileSize + 2

	mapW, mapH := vp.scene.MapSize()

	row := (upperLeft.X+upperLeft.Y)/geometry.TileSize - 2
	for lastRow := false; !lastRow; row++ {
		lastRow = true
		for column := leftColumn; column <= rightColumn; column++ {
			// Tile coordinates map to (row, column) pairs of equal parity.
			if (row+column)%2 != 0 {
				continue
			}
			tx := (row - column) / 2
			ty := (row + column) / 2

			inside := tx >= 0 && tx < mapW && ty >= 0 && ty < mapH
			z := 0
			if inside {
				z = vp.scene.TileHeight(tx, ty)
			}

			topY := (tx+ty)*geometry.TileSize - z
			if topY+maxTileExtentBottom < clip.Top {
				// Not this far north yet; rows further south may be.
				lastRow = false
				continue
			}

			minVisibleHeight := topY - clip.Bottom()
			visible := minVisibleHeight <= 0
			if inside && minVisibleHeight < maxTileExtentTop {
				visible = true
			}
			if minVisibleHeight < maxTileExtentTop {
				// A structure on a more southern row could still reach
				// into the region.
				lastRow = false
			}

			if !visible {
				continue
			}

			ti := TileInfo{
				TX: tx, TY: ty,
				X: tx * geometry.TileSize, Y: ty * geometry.TileSize,
				Z:      z,
				Inside: inside,
			}
			d.beginTile(geometry.WorldPos{X: ti.X, Y: ti.Y, Z: ti.Z})
			vp.scene.DrawTile(d, ti)
		}
	}
}
