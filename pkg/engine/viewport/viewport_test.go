package viewport

import (
	"image/color"
	"testing"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
)

// spriteCall records one DrawSprite invocation.
type spriteCall struct {
	id   sprites.SpriteID
	x, y int
}

// recordingPainter captures the call stream a viewport produces.
type recordingPainter struct {
	regions  []geometry.ClipRect
	sprites  []spriteCall
	outlines int
	texts    []string
	open     bool
}

func (p *recordingPainter) BeginRegion(clip geometry.ClipRect) {
	if p.open {
		panic("BeginRegion while a region is open")
	}
	p.open = true
	p.regions = append(p.regions, clip)
}

func (p *recordingPainter) DrawSprite(id sprites.SpriteID, pal sprites.PaletteID, x, y int, sub *sprites.SubRect) {
	if !p.open {
		panic("DrawSprite outside a region")
	}
	p.sprites = append(p.sprites, spriteCall{id: id, x: x, y: y})
}

func (p *recordingPainter) DrawBoxOutline(corner, left, right, down geometry.Point) {
	p.outlines++
}

func (p *recordingPainter) DrawText(x, y, width int, key string, args []any, colour color.RGBA, frame bool) {
	if !p.open {
		panic("DrawText outside a region")
	}
	p.texts = append(p.texts, key)
}

func (p *recordingPainter) EndRegion() {
	if !p.open {
		panic("EndRegion without BeginRegion")
	}
	p.open = false
}

// fakeScene is a flat map that draws one ground sprite and one sortable
// object per tile, and records which tiles were visited.
type fakeScene struct {
	w, h    int
	ground  sprites.SpriteID
	obj     sprites.SpriteID
	visited map[[2]int]bool
	objects func(d *DrawList, clip geometry.ClipRect)
}

func (s *fakeScene) MapSize() (int, int) { return s.w, s.h }

func (s *fakeScene) TileHeight(tx, ty int) int { return 0 }

func (s *fakeScene) DrawTile(d *DrawList, ti TileInfo) {
	if !ti.Inside {
		return
	}
	if s.visited != nil {
		s.visited[[2]int{ti.TX, ti.TY}] = true
	}
	pos := geometry.WorldPos{X: ti.X, Y: ti.Y, Z: ti.Z}
	d.AddGroundSprite(s.ground, sprites.PaletteNone, pos, nil)
	d.AddSortableSprite(s.obj, sprites.PaletteNone, pos,
		geometry.TileSize, geometry.TileSize, 8, 0, 0, 0, false, nil)
}

func (s *fakeScene) DrawObjects(d *DrawList, clip geometry.ClipRect) {
	if s.objects != nil {
		s.objects(d, clip)
	}
}

// newTestViewport wires a fake scene into a viewport of the given screen
// size, centered on the middle of the map.
func newTestViewport(t *testing.T, mapW, mapH, width, height int) (*Viewport, *fakeScene) {
	t.Helper()
	atlas := sprites.NewAtlas()
	scene := &fakeScene{
		w: mapW, h: mapH,
		ground:  atlas.Register(sprites.Extent{Width: 64, Height: 31, XOffs: -31}),
		obj:     atlas.Register(sprites.Extent{Width: 16, Height: 16}),
		visited: make(map[[2]int]bool),
	}
	vp := New(scene, atlas, 0, 0, width, height)
	vp.CenterOn(geometry.WorldPos{
		X: mapW * geometry.TileSize / 2,
		Y: mapH * geometry.TileSize / 2,
	})
	return vp, scene
}

func TestCenterOn_PutsPositionMidViewport(t *testing.T) {
	vp, _ := newTestViewport(t, 8, 8, 400, 300)
	vp.CenterOn(geometry.WorldPos{X: 32, Y: 32})

	pt := geometry.Project(32, 32, 0)
	if vp.VirtualLeft != pt.X-200 || vp.VirtualTop != pt.Y-150 {
		t.Errorf("virtual origin = (%d,%d), want (%d,%d)",
			vp.VirtualLeft, vp.VirtualTop, pt.X-200, pt.Y-150)
	}
}

func TestDraw_ChunksStayWithinPixelBudget(t *testing.T) {
	vp, _ := newTestViewport(t, 8, 8, 800, 600)
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 800, 600)

	if len(p.regions) < 2 {
		t.Fatalf("oversized draw ran as %d region(s), want several", len(p.regions))
	}
	area := 0
	for _, r := range p.regions {
		if r.Width*r.Height > regionPixelBudget {
			t.Errorf("region %dx%d exceeds the pixel budget", r.Width, r.Height)
		}
		area += r.Width * r.Height
	}
	if want := vp.VirtualWidth() * vp.VirtualHeight(); area != want {
		t.Errorf("regions cover %d virtual pixels, want %d", area, want)
	}
	if p.open {
		t.Error("draw finished with an open region")
	}
}

func TestDraw_ZoomedOutCoversMoreVirtualArea(t *testing.T) {
	vp, _ := newTestViewport(t, 8, 8, 400, 300)
	vp.Zoom = geometry.ZoomOut2x
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 400, 300)

	area := 0
	for _, r := range p.regions {
		if r.Zoom != geometry.ZoomOut2x {
			t.Errorf("region zoom = %d, want %d", r.Zoom, geometry.ZoomOut2x)
		}
		area += r.Width * r.Height
	}
	if want := 800 * 600; area != want {
		t.Errorf("regions cover %d virtual pixels, want %d", area, want)
	}
}

func TestDraw_RectOutsideViewportDoesNothing(t *testing.T) {
	vp, _ := newTestViewport(t, 8, 8, 400, 300)
	p := &recordingPainter{}
	vp.Draw(p, 400, 0, 800, 300)
	vp.Draw(p, 0, 300, 400, 600)
	if len(p.regions) != 0 {
		t.Errorf("out-of-viewport draw produced %d regions", len(p.regions))
	}
}

func TestDraw_GroundThenSortedThenText(t *testing.T) {
	vp, scene := newTestViewport(t, 4, 4, 200, 150)
	scene.objects = func(d *DrawList, clip geometry.ClipRect) {
		d.AddString("label", nil, vp.VirtualLeft+100, vp.VirtualTop+75, 0,
			color.RGBA{255, 255, 255, 255}, false)
	}
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 200, 150)

	if len(p.regions) != 1 {
		t.Fatalf("small draw split into %d regions, want 1", len(p.regions))
	}
	if len(p.sprites) == 0 {
		t.Fatal("no sprites painted")
	}

	lastGround, firstObj := -1, len(p.sprites)
	for i, c := range p.sprites {
		switch c.id.Base() {
		case scene.ground:
			lastGround = i
		case scene.obj:
			if i < firstObj {
				firstObj = i
			}
		}
	}
	if lastGround == -1 || firstObj == len(p.sprites) {
		t.Fatal("expected both ground and object sprites")
	}
	if lastGround > firstObj {
		t.Errorf("ground sprite painted at %d after sorted sprite at %d", lastGround, firstObj)
	}
	if len(p.texts) != 1 {
		t.Errorf("got %d text overlays, want 1", len(p.texts))
	}
}

func TestDraw_VisitsEveryMapTile(t *testing.T) {
	vp, scene := newTestViewport(t, 4, 4, 600, 400)
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 600, 400)

	for ty := 0; ty < 4; ty++ {
		for tx := 0; tx < 4; tx++ {
			if !scene.visited[[2]int{tx, ty}] {
				t.Errorf("tile (%d,%d) was never drawn", tx, ty)
			}
		}
	}
}

func TestDraw_SortOnlySpriteIsNotBlitted(t *testing.T) {
	vp, scene := newTestViewport(t, 4, 4, 200, 150)
	scene.objects = func(d *DrawList, clip geometry.ClipRect) {
		d.AddSortableSprite(sprites.EmptyBoundingBox, sprites.PaletteNone,
			geometry.WorldPos{X: 32, Y: 32},
			geometry.TileSize, geometry.TileSize, 8, 0, 0, 0, false, nil)
		d.AddChildSprite(scene.obj, sprites.PaletteNone, 2, 3, false, nil)
	}
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 200, 150)

	objDraws := 0
	for _, c := range p.sprites {
		if c.id.Base() == sprites.EmptyBoundingBox {
			t.Fatal("sort-only sprite was blitted")
		}
		if c.id.Base() == scene.obj {
			objDraws++
		}
	}
	// 16 tile objects plus the child hanging off the invisible parent.
	if objDraws != 17 {
		t.Errorf("got %d object blits, want 17", objDraws)
	}
}

func TestDraw_BoundingBoxOverlay(t *testing.T) {
	vp, _ := newTestViewport(t, 4, 4, 200, 150)
	vp.DrawBoundingBoxes = true
	p := &recordingPainter{}
	vp.Draw(p, 0, 0, 200, 150)

	if p.outlines != 16 {
		t.Errorf("got %d box outlines, want one per sortable sprite (16)", p.outlines)
	}
}
