package world

import (
	"image/color"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
	"isoworld/pkg/engine/viewport"
)

// Pixel heights of the demo structures; one world Z unit projects to one
// pixel, so these double as bounding-box dz extents.
const (
	houseHeight = 24
	towerHeight = 40
	treeHeight  = 30
	cartHeight  = 10
)

// foundationGroundOffset is the pixel offset that places a ground sprite
// drawn as a foundation child back onto the raised tile surface: the
// foundation parent is anchored one height step below the tile, and its
// bitmap offset shifts the footprint corner half a tile to the left.
var foundationGroundOffset = geometry.Point{X: 31, Y: 0}

// In-tile positions of the trees of a stand, world units from the tile
// origin.
var treeSpots = [3]geometry.Point{
	{X: 4, Y: 4},
	{X: 11, Y: 7},
	{X: 6, Y: 12},
}

// MapSize implements viewport.Scene.
func (m *Map) MapSize() (int, int) {
	return m.W, m.H
}

// TileHeight implements viewport.Scene, in world units.
func (m *Map) TileHeight(tx, ty int) int {
	return int(m.At(tx, ty).Height) * geometry.HeightStep
}

// DrawTile implements viewport.Scene: ground (on a foundation when the tile
// is raised above a neighbour), then the building or tree stand.
func (m *Map) DrawTile(d *viewport.DrawList, ti viewport.TileInfo) {
	origin := geometry.WorldPos{X: ti.X, Y: ti.Y, Z: ti.Z}

	if !ti.Inside {
		d.AddGroundSprite(m.Art.Void, sprites.PaletteNone, origin, nil)
		return
	}
	t := m.At(ti.TX, ti.TY)

	if m.needsFoundation(ti.TX, ti.TY) {
		lowered := origin
		lowered.Z -= geometry.HeightStep
		d.AddSortableSprite(m.Art.Foundation, sprites.PaletteNone, lowered,
			geometry.TileSize, geometry.TileSize, geometry.HeightStep, 0, 0, 0, false, nil)
		d.BeginFoundationPart(viewport.FoundationPartNormal)
		d.SetFoundationOffset(viewport.FoundationPartNormal,
			foundationGroundOffset.X, foundationGroundOffset.Y)
	}

	d.AddGroundSprite(m.Art.Ground[t.Terrain], sprites.PaletteNone, origin, nil)

	switch t.Building {
	case BuildingHouse, BuildingHouse2:
		img := m.Art.Houses[0]
		if t.Building == BuildingHouse2 {
			img = m.Art.Houses[1]
		}
		d.AddSortableSprite(img, sprites.PaletteNone, origin,
			geometry.TileSize, geometry.TileSize, houseHeight, 0, 0, 0, false, nil)
		// Door on the south-west face.
		d.AddChildSprite(m.Art.HouseDoor, sprites.PaletteNone, 20, houseHeight+14, false, nil)
	case BuildingTower:
		d.AddSortableSprite(m.Art.Tower, sprites.PaletteNone, origin,
			geometry.TileSize, geometry.TileSize, towerHeight, 0, 0, 0, false, nil)
	}

	if t.Trees > 0 {
		// All trees of a stand share one bounding box so they always paint
		// in a fixed order relative to each other.
		d.StartCombine()
		for i := 0; i < int(t.Trees); i++ {
			pos := origin
			pos.X += treeSpots[i].X
			pos.Y += treeSpots[i].Y
			d.AddSortableSprite(m.Art.Trees[t.TreeKind], sprites.PaletteNone, pos,
				geometry.TileSize, geometry.TileSize, treeHeight, 0, 0, 0, false, nil)
		}
		d.EndCombine()
	}
}

// DrawObjects implements viewport.Scene: carts and town-name overlays.
func (m *Map) DrawObjects(d *viewport.DrawList, clip geometry.ClipRect) {
	for i := range m.Carts {
		c := &m.Carts[i]
		pos := geometry.WorldPos{X: c.X, Y: c.Y, Z: m.groundAt(c.X, c.Y)}
		d.AddSortableSprite(m.Art.Cart, sprites.PaletteNone, pos,
			6, 6, cartHeight, 0, 0, 0, false, nil)
	}

	for i := range m.Towns {
		t := &m.Towns[i]
		pt := geometry.Project(
			t.TX*geometry.TileSize+geometry.TileSize/2,
			t.TY*geometry.TileSize+geometry.TileSize/2,
			m.TileHeight(t.TX, t.TY))
		if clip.Excludes(pt.X-64, pt.Y-40, pt.X+64, pt.Y) {
			continue
		}
		d.AddString("%s · pop %d", []any{t.Name, t.Population},
			pt.X, pt.Y-40, 0, color.RGBA{240, 240, 240, 255}, true)
	}
}

// groundAt returns the terrain height in world units under a world X/Y
// position.
func (m *Map) groundAt(x, y int) int {
	tx := x / geometry.TileSize
	ty := y / geometry.TileSize
	if !m.Contains(tx, ty) {
		return 0
	}
	return m.TileHeight(tx, ty)
}

// needsFoundation reports whether the tile sits above any of its cardinal
// neighbours and therefore draws raised-ground walls.
func (m *Map) needsFoundation(tx, ty int) bool {
	t := m.At(tx, ty)
	if t.Height == 0 {
		return false
	}
	for _, n := range [4][2]int{{tx - 1, ty}, {tx + 1, ty}, {tx, ty - 1}, {tx, ty + 1}} {
		if !m.Contains(n[0], n[1]) || m.At(n[0], n[1]).Height < t.Height {
			return true
		}
	}
	return false
}
