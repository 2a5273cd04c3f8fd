package text

import (
	"bytes"
	"strings"
	"testing"

	"isoworld/pkg/engine/viewport"
	"isoworld/pkg/game/art"
	"isoworld/pkg/game/world"
)

// newTextFrame renders a small flat world into a fresh painter.
func newTextFrame(t *testing.T) (*Painter, *bytes.Buffer) {
	t.Helper()
	set := art.BuildSet()
	m := world.NewMap(6, 6, set)
	for i := range m.Tiles {
		m.Tiles[i].Terrain = art.TerrainGrass
	}

	p := NewPainter(set, 60, 24)
	w, h := p.FrameSize()
	vp := viewport.New(m, set.Atlas, 0, 0, w, h)
	vp.CenterOn(m.Center())

	p.StartFrame(vp)
	vp.Draw(p, 0, 0, w, h)

	var buf bytes.Buffer
	if err := p.Flush(&buf); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return p, &buf
}

func TestPainter_FrameSizeMatchesGrid(t *testing.T) {
	p := NewPainter(art.BuildSet(), 60, 24)
	w, h := p.FrameSize()
	if w != 60*cellWidth || h != 24*cellHeight {
		t.Errorf("FrameSize = %dx%d", w, h)
	}
}

func TestPainter_RendersVisibleWorld(t *testing.T) {
	_, buf := newTextFrame(t)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 24 {
		t.Fatalf("got %d output lines, want 24", len(lines))
	}
	if !strings.Contains(buf.String(), "█") {
		t.Error("no cells were painted")
	}
}

func TestPainter_StartFrameClearsCells(t *testing.T) {
	p, _ := newTextFrame(t)
	painted := 0
	for _, c := range p.cells {
		if c.set {
			painted++
		}
	}
	if painted == 0 {
		t.Fatal("frame painted nothing")
	}

	set := art.BuildSet()
	m := world.NewMap(2, 2, set)
	w, h := p.FrameSize()
	vp := viewport.New(m, set.Atlas, 0, 0, w, h)
	p.StartFrame(vp)
	for _, c := range p.cells {
		if c.set {
			t.Fatal("StartFrame kept cells from the previous frame")
		}
	}
}
