package art

import (
	"testing"

	"isoworld/pkg/engine/sprites"
)

func TestBuildSet_EverySpriteHasBitmapAndExtent(t *testing.T) {
	s := BuildSet()

	ids := []sprites.SpriteID{s.Void, s.Foundation, s.HouseDoor, s.Tower, s.Cart}
	for _, id := range s.Ground {
		ids = append(ids, id)
	}
	for _, id := range s.Houses {
		ids = append(ids, id)
	}
	for _, id := range s.Trees {
		ids = append(ids, id)
	}

	seen := make(map[sprites.SpriteID]bool)
	for _, id := range ids {
		if id == sprites.EmptyBoundingBox {
			t.Fatal("catalog sprite got the reserved id")
		}
		if seen[id] {
			t.Errorf("sprite id %d registered twice", id)
		}
		seen[id] = true

		img := s.Image(id)
		if img == nil {
			t.Fatalf("sprite %d has no bitmap", id)
		}
		ext := s.Atlas.Extent(id)
		if ext.Width <= 0 || ext.Height <= 0 {
			t.Errorf("sprite %d has extent %+v", id, ext)
		}
		b := img.Bounds()
		if b.Dx() != ext.Width || b.Dy() != ext.Height {
			t.Errorf("sprite %d bitmap is %dx%d, extent says %dx%d",
				id, b.Dx(), b.Dy(), ext.Width, ext.Height)
		}
	}

	if s.Atlas.Len() != len(ids)+1 {
		t.Errorf("atlas has %d entries, want %d sprites plus the reserved id", s.Atlas.Len(), len(ids))
	}
}

func TestBuildSet_GroundTilesAnchorOnNorthCorner(t *testing.T) {
	s := BuildSet()
	for terrain, id := range s.Ground {
		ext := s.Atlas.Extent(id)
		// The projected anchor is the tile's north corner, in the middle of
		// the diamond's top edge.
		if ext.XOffs != -tileWidth/2+1 || ext.YOffs != 0 {
			t.Errorf("terrain %d offsets = (%d,%d), want (%d,0)",
				terrain, ext.XOffs, ext.YOffs, -tileWidth/2+1)
		}
	}
}

func TestBuildSet_TileDiamondIsOpaqueInsideOnly(t *testing.T) {
	s := BuildSet()
	img := s.Image(s.Ground[TerrainGrass])

	if img.RGBAAt(tileWidth/2, tileHeight/2).A == 0 {
		t.Error("diamond centre is transparent")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("diamond corner is opaque")
	}
}

func TestImage_ReservedIDHasNoBitmap(t *testing.T) {
	s := BuildSet()
	if s.Image(sprites.EmptyBoundingBox) != nil {
		t.Error("reserved id returned a bitmap")
	}
}
