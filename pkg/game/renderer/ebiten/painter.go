// Package ebiten provides the Ebiten-based graphical backend: a
// viewport.Painter that blits the resolved draw lists onto an ebiten.Image,
// and an interactive viewer with scrolling and zooming.
package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
	"isoworld/pkg/engine/viewport"
	"isoworld/pkg/game/art"
	"isoworld/pkg/game/renderer"
)

const overlayFontSize = 13

// tintKey caches recoloured sprite textures per palette.
type tintKey struct {
	id  sprites.SpriteID
	pal sprites.PaletteID
}

// Painter blits resolved draw lists onto an ebiten.Image. One painter is
// reused across frames; StartFrame rebinds it to the frame's target and
// viewport before the viewport's Draw call.
type Painter struct {
	set   *art.Set
	cache map[tintKey]*ebiten.Image
	face  *text.GoTextFace

	target *ebiten.Image
	region *ebiten.Image
	clip   geometry.ClipRect

	screenLeft, screenTop   int
	virtualLeft, virtualTop int
}

// NewPainter builds a painter over the sprite catalog.
func NewPainter(set *art.Set) (*Painter, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading overlay font: %w", err)
	}
	return &Painter{
		set:   set,
		cache: make(map[tintKey]*ebiten.Image),
		face:  &text.GoTextFace{Source: src, Size: overlayFontSize},
	}, nil
}

// StartFrame points the painter at this frame's render target and the
// viewport whose regions it will receive.
func (p *Painter) StartFrame(target *ebiten.Image, vp *viewport.Viewport) {
	p.target = target
	p.screenLeft = vp.Left
	p.screenTop = vp.Top
	p.virtualLeft = vp.VirtualLeft
	p.virtualTop = vp.VirtualTop
}

// toScreen converts a virtual position to target pixels.
func (p *Painter) toScreen(vx, vy int) (int, int) {
	return p.screenLeft + geometry.UnscaleByZoom(vx-p.virtualLeft, p.clip.Zoom),
		p.screenTop + geometry.UnscaleByZoom(vy-p.virtualTop, p.clip.Zoom)
}

// BeginRegion implements viewport.Painter.
func (p *Painter) BeginRegion(clip geometry.ClipRect) {
	p.clip = clip
	x, y := p.screenLeft+geometry.UnscaleByZoom(clip.Left-p.virtualLeft, clip.Zoom),
		p.screenTop+geometry.UnscaleByZoom(clip.Top-p.virtualTop, clip.Zoom)
	w := geometry.UnscaleByZoom(clip.Width, clip.Zoom)
	h := geometry.UnscaleByZoom(clip.Height, clip.Zoom)
	p.region = p.target.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
}

// EndRegion implements viewport.Painter.
func (p *Painter) EndRegion() {
	p.region = nil
}

// bitmap returns the sprite texture recoloured for pal, cached.
func (p *Painter) bitmap(id sprites.SpriteID, pal sprites.PaletteID) *ebiten.Image {
	key := tintKey{id: id.Base(), pal: pal}
	if img, ok := p.cache[key]; ok {
		return img
	}
	src := renderer.ApplyPalette(p.set.Image(id), pal)
	img := ebiten.NewImageFromImage(src)
	p.cache[key] = img
	return img
}

// DrawSprite implements viewport.Painter.
func (p *Painter) DrawSprite(id sprites.SpriteID, pal sprites.PaletteID, x, y int, sub *sprites.SubRect) {
	if id.Base() == sprites.EmptyBoundingBox {
		return
	}
	img := p.bitmap(id, pal)
	ext := p.set.Atlas.Extent(id)

	vx := x + ext.XOffs
	vy := y + ext.YOffs
	if sub != nil {
		img = img.SubImage(image.Rect(sub.Left, sub.Top, sub.Right+1, sub.Bottom+1)).(*ebiten.Image)
		vx += sub.Left
		vy += sub.Top
	}

	sx, sy := p.toScreen(vx, vy)
	scale := 1 / float64(geometry.ScaleByZoom(1, p.clip.Zoom))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(sx), float64(sy))
	p.region.DrawImage(img, op)
}

// DrawBoxOutline implements viewport.Painter: three edges of the bounding
// box's top face from its projected front corner.
func (p *Painter) DrawBoxOutline(corner, left, right, down geometry.Point) {
	cx, cy := p.toScreen(corner.X, corner.Y)
	outline := color.RGBA{255, 255, 255, 180}
	for _, edge := range []geometry.Point{left, right, down} {
		ex, ey := p.toScreen(corner.X+edge.X, corner.Y+edge.Y)
		vector.StrokeLine(p.region, float32(cx), float32(cy), float32(ex), float32(ey), 1, outline, false)
	}
}

// DrawText implements viewport.Painter: overlay labels at screen scale,
// horizontally centred on their anchor.
func (p *Painter) DrawText(x, y, width int, key string, args []any, colour color.RGBA, frame bool) {
	s := renderer.FormatString(key, args)
	sx, sy := p.toScreen(x, y)

	tw, th := text.Measure(s, p.face, 0)
	w := float64(width)
	if width == 0 {
		w = tw
	}
	bx := float64(sx) - w/2

	if frame {
		bg := color.RGBA{20, 20, 28, 200}
		vector.DrawFilledRect(p.region, float32(bx-3), float32(sy-2), float32(w+6), float32(th+4), bg, false)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(bx, float64(sy))
	op.ColorScale.ScaleWithColor(colour)
	text.Draw(p.region, s, p.face, op)
}
