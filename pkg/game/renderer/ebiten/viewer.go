package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/viewport"
	"isoworld/pkg/game/world"
)

// scrollSpeed is in screen pixels per tick; scrolling covers more world when
// zoomed out.
const scrollSpeed = 6

// Viewer is the interactive demo: an ebiten.Game that scrolls and zooms one
// viewport over the world. Arrows/WASD scroll, +/- zoom, B toggles the
// bounding-box overlay.
type Viewer struct {
	vp      *viewport.Viewport
	world   *world.Map
	painter *Painter
}

// NewViewer wires a viewer over the given world and viewport.
func NewViewer(vp *viewport.Viewport, m *world.Map) (*Viewer, error) {
	p, err := NewPainter(m.Art)
	if err != nil {
		return nil, err
	}
	return &Viewer{vp: vp, world: m, painter: p}, nil
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= scrollSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += scrollSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= scrollSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += scrollSpeed
	}
	v.vp.VirtualLeft += geometry.ScaleByZoom(dx, v.vp.Zoom)
	v.vp.VirtualTop += geometry.ScaleByZoom(dy, v.vp.Zoom)

	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && v.vp.Zoom < geometry.ZoomMax {
		v.setZoom(v.vp.Zoom + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && v.vp.Zoom > geometry.ZoomNormal {
		v.setZoom(v.vp.Zoom - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.vp.DrawBoundingBoxes = !v.vp.DrawBoundingBoxes
	}

	v.world.Advance()
	return nil
}

// setZoom changes the zoom level while keeping the view centred on the same
// world position.
func (v *Viewer) setZoom(z geometry.ZoomLevel) {
	cx := v.vp.VirtualLeft + v.vp.VirtualWidth()/2
	cy := v.vp.VirtualTop + v.vp.VirtualHeight()/2
	v.vp.Zoom = z
	v.vp.VirtualLeft = cx - v.vp.VirtualWidth()/2
	v.vp.VirtualTop = cy - v.vp.VirtualHeight()/2
}

// Draw implements ebiten.Game: one full viewport pass into the screen.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.painter.StartFrame(screen, v.vp)
	v.vp.Draw(v.painter, v.vp.Left, v.vp.Top, v.vp.Left+v.vp.Width, v.vp.Top+v.vp.Height)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.vp.Width, v.vp.Height
}

// Run opens the window and runs the viewer until it is closed.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowSize(v.vp.Width, v.vp.Height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(v)
}
