// Package text renders viewport regions as coloured character cells on the
// terminal. It trades all sprite detail for a quick headless look at what
// the engine resolved, in the order it resolved it.
package text

import (
	"image/color"
	"io"
	"strings"

	gookit "github.com/gookit/color"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
	"isoworld/pkg/engine/viewport"
	"isoworld/pkg/game/art"
	"isoworld/pkg/game/renderer"
)

// Screen pixels per character cell. Two rows of pixels per row of cells
// keeps the diamond tiles roughly square on common terminal fonts.
const (
	cellWidth  = 4
	cellHeight = 8
)

type cell struct {
	ch  rune
	fg  color.RGBA
	set bool
}

type sampleKey struct {
	id  sprites.SpriteID
	pal sprites.PaletteID
}

// Painter implements viewport.Painter over a grid of character cells.
// Each sprite paints the cells its screen rectangle covers with a single
// sampled colour, so later sprites overwrite earlier ones exactly as the
// resolved draw order dictates.
type Painter struct {
	set    *art.Set
	sample map[sampleKey]color.RGBA

	cols, rows int
	cells      []cell

	clip                    geometry.ClipRect
	screenLeft, screenTop   int
	virtualLeft, virtualTop int
}

// NewPainter builds a painter with a cols-by-rows cell grid. The matching
// viewport should be FrameSize() pixels wide and high.
func NewPainter(set *art.Set, cols, rows int) *Painter {
	return &Painter{
		set:    set,
		sample: make(map[sampleKey]color.RGBA),
		cols:   cols,
		rows:   rows,
		cells:  make([]cell, cols*rows),
	}
}

// FrameSize returns the screen pixel dimensions the cell grid covers.
func (p *Painter) FrameSize() (w, h int) {
	return p.cols * cellWidth, p.rows * cellHeight
}

// StartFrame clears the grid and binds the painter to the viewport whose
// regions it will receive.
func (p *Painter) StartFrame(vp *viewport.Viewport) {
	for i := range p.cells {
		p.cells[i] = cell{}
	}
	p.screenLeft = vp.Left
	p.screenTop = vp.Top
	p.virtualLeft = vp.VirtualLeft
	p.virtualTop = vp.VirtualTop
}

// toScreen converts a virtual position to screen pixels.
func (p *Painter) toScreen(vx, vy int) (int, int) {
	return p.screenLeft + geometry.UnscaleByZoom(vx-p.virtualLeft, p.clip.Zoom),
		p.screenTop + geometry.UnscaleByZoom(vy-p.virtualTop, p.clip.Zoom)
}

// BeginRegion implements viewport.Painter.
func (p *Painter) BeginRegion(clip geometry.ClipRect) {
	p.clip = clip
}

// EndRegion implements viewport.Painter.
func (p *Painter) EndRegion() {}

func (p *Painter) put(cx, cy int, ch rune, fg color.RGBA) {
	if cx < 0 || cx >= p.cols || cy < 0 || cy >= p.rows {
		return
	}
	p.cells[cy*p.cols+cx] = cell{ch: ch, fg: fg, set: true}
}

// spriteColour returns the representative colour of a sprite under a
// palette, cached per pair.
func (p *Painter) spriteColour(id sprites.SpriteID, pal sprites.PaletteID) (color.RGBA, bool) {
	key := sampleKey{id: id.Base(), pal: pal}
	if c, ok := p.sample[key]; ok {
		return c, c.A != 0
	}
	c, ok := renderer.SampleColour(renderer.ApplyPalette(p.set.Image(id), pal))
	p.sample[key] = c
	return c, ok
}

// DrawSprite implements viewport.Painter.
func (p *Painter) DrawSprite(id sprites.SpriteID, pal sprites.PaletteID, x, y int, sub *sprites.SubRect) {
	if id.Base() == sprites.EmptyBoundingBox {
		return
	}
	fg, ok := p.spriteColour(id, pal)
	if !ok {
		return
	}
	ext := p.set.Atlas.Extent(id)
	left, top := x+ext.XOffs, y+ext.YOffs
	w, h := ext.Width, ext.Height
	if sub != nil {
		left += sub.Left
		top += sub.Top
		w = sub.Right - sub.Left + 1
		h = sub.Bottom - sub.Top + 1
	}

	sx, sy := p.toScreen(left, top)
	sw := geometry.UnscaleByZoom(w, p.clip.Zoom)
	sh := geometry.UnscaleByZoom(h, p.clip.Zoom)

	ch := '█'
	if pal == sprites.PaletteToTransparent {
		ch = '░'
	}
	for cy := sy / cellHeight; cy <= (sy+sh-1)/cellHeight; cy++ {
		for cx := sx / cellWidth; cx <= (sx+sw-1)/cellWidth; cx++ {
			p.put(cx, cy, ch, fg)
		}
	}
}

// DrawBoxOutline implements viewport.Painter: the three top-face corners,
// marked rather than traced.
func (p *Painter) DrawBoxOutline(corner, left, right, down geometry.Point) {
	white := color.RGBA{255, 255, 255, 255}
	for _, pt := range []geometry.Point{{}, left, right, down} {
		sx, sy := p.toScreen(corner.X+pt.X, corner.Y+pt.Y)
		p.put(sx/cellWidth, sy/cellHeight, '+', white)
	}
}

// DrawText implements viewport.Painter: one cell per rune, centred on the
// anchor like the graphical backend.
func (p *Painter) DrawText(x, y, width int, key string, args []any, colour color.RGBA, frame bool) {
	s := renderer.FormatString(key, args)
	runes := []rune(s)
	sx, sy := p.toScreen(x, y)
	cy := sy / cellHeight
	cx := sx/cellWidth - len(runes)/2
	for i, r := range runes {
		p.put(cx+i, cy, r, colour)
	}
}

// Flush writes the grid to w, one styled line per cell row.
func (p *Painter) Flush(w io.Writer) error {
	var sb strings.Builder
	for cy := 0; cy < p.rows; cy++ {
		sb.Reset()
		for cx := 0; cx < p.cols; cx++ {
			c := p.cells[cy*p.cols+cx]
			if !c.set {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(gookit.RGB(c.fg.R, c.fg.G, c.fg.B).Sprint(string(c.ch)))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
