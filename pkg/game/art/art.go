// Package art is the built-in sprite catalog for the demo world: it
// registers every sprite's metadata in an atlas and generates the matching
// pixel art procedurally, so the engine runs without any asset files. The
// renderer backends read the bitmaps, the world layer only uses the ids.
package art

import (
	"image"
	"image/color"

	"isoworld/pkg/engine/sprites"
)

// Terrain is the ground type of a tile, in rising-elevation order.
type Terrain uint8

const (
	TerrainWater Terrain = iota
	TerrainSand
	TerrainGrass
	TerrainRock

	TerrainCount
)

// Pixel footprint of a flat tile under the engine projection.
const (
	tileWidth  = 64
	tileHeight = 32
	// levelPixels is how many pixels one world height step covers.
	levelPixels = 8
)

// Set is the complete sprite catalog: ids into Atlas plus the generated
// bitmaps, indexed by sprite id base.
type Set struct {
	Atlas  *sprites.Atlas
	images []*image.RGBA

	Void       sprites.SpriteID
	Ground     [TerrainCount]sprites.SpriteID
	Foundation sprites.SpriteID
	Houses     [2]sprites.SpriteID
	HouseDoor  sprites.SpriteID
	Tower      sprites.SpriteID
	Trees      [3]sprites.SpriteID
	Cart       sprites.SpriteID
}

// BuildSet registers and renders the whole catalog.
func BuildSet() *Set {
	s := &Set{
		Atlas:  sprites.NewAtlas(),
		images: make([]*image.RGBA, 1), // reserved EmptyBoundingBox slot
	}

	s.Void = s.tile(color.RGBA{12, 12, 16, 255}, color.RGBA{12, 12, 16, 255})

	s.Ground[TerrainWater] = s.tile(color.RGBA{38, 92, 166, 255}, color.RGBA{30, 74, 138, 255})
	s.Ground[TerrainSand] = s.tile(color.RGBA{214, 190, 122, 255}, color.RGBA{190, 166, 100, 255})
	s.Ground[TerrainGrass] = s.tile(color.RGBA{74, 150, 66, 255}, color.RGBA{58, 124, 52, 255})
	s.Ground[TerrainRock] = s.tile(color.RGBA{138, 134, 130, 255}, color.RGBA{112, 108, 104, 255})

	s.Foundation = s.foundation(color.RGBA{120, 104, 84, 255})

	s.Houses[0] = s.cuboid(24, color.RGBA{182, 92, 70, 255})
	s.Houses[1] = s.cuboid(24, color.RGBA{150, 150, 170, 255})
	s.HouseDoor = s.door()
	s.Tower = s.cuboid(40, color.RGBA{120, 126, 150, 255})

	s.Trees[0] = s.tree(26, color.RGBA{40, 110, 44, 255})
	s.Trees[1] = s.tree(30, color.RGBA{34, 96, 56, 255})
	s.Trees[2] = s.tree(22, color.RGBA{76, 128, 40, 255})

	s.Cart = s.cart()

	return s
}

// Image returns the bitmap of a sprite, or nil for the reserved
// EmptyBoundingBox id.
func (s *Set) Image(id sprites.SpriteID) *image.RGBA {
	return s.images[id.Base()]
}

// register stores a fresh bitmap with its extent and returns the new id.
func (s *Set) register(w, h, xoffs, yoffs int) (sprites.SpriteID, *image.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	id := s.Atlas.Register(sprites.Extent{Width: w, Height: h, XOffs: xoffs, YOffs: yoffs})
	s.images = append(s.images, img)
	return id, img
}

// diamondSpan returns the horizontal pixel span of the tile diamond at the
// given bitmap row.
func diamondSpan(y int) (int, int) {
	hw := 2 * (y + 1)
	if y >= tileHeight/2 {
		hw = 2 * (tileHeight - y)
	}
	return tileWidth/2 - hw, tileWidth/2 + hw
}

// tile renders a flat ground diamond, checkered in two shades so tile
// boundaries stay visible.
func (s *Set) tile(a, b color.RGBA) sprites.SpriteID {
	id, img := s.register(tileWidth, tileHeight, -tileWidth/2+1, 0)
	for y := 0; y < tileHeight; y++ {
		lo, hi := diamondSpan(y)
		for x := lo; x < hi; x++ {
			c := a
			if (x/4+y/4)%2 == 0 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return id
}

// foundation renders one height step of raised-ground walls with the tile
// top face above them.
func (s *Set) foundation(c color.RGBA) sprites.SpriteID {
	id, img := s.register(tileWidth, tileHeight+levelPixels, -tileWidth/2+1, -levelPixels)
	top := shade(c, 1.15)
	left := c
	right := shade(c, 0.75)
	for y := 0; y < tileHeight; y++ {
		lo, hi := diamondSpan(y)
		for x := lo; x < hi; x++ {
			img.SetRGBA(x, y, top)
		}
		// Extend walls below the southern half of the diamond.
		if y >= tileHeight/2 {
			for dy := 1; dy <= levelPixels; dy++ {
				img.SetRGBA(lo, y+dy, left)
				img.SetRGBA(hi-1, y+dy, right)
			}
		}
	}
	// Fill the wall area between the lower edges.
	for y := tileHeight / 2; y < tileHeight; y++ {
		lo, hi := diamondSpan(y)
		for dy := 1; dy <= levelPixels; dy++ {
			for x := lo; x < tileWidth/2; x++ {
				img.SetRGBA(x, y+dy, left)
			}
			for x := tileWidth / 2; x < hi; x++ {
				img.SetRGBA(x, y+dy, right)
			}
		}
	}
	return id
}

// cuboid renders a full-tile building of the given pixel height.
func (s *Set) cuboid(h int, c color.RGBA) sprites.SpriteID {
	id, img := s.register(tileWidth, tileHeight+h, -tileWidth/2+1, -h)
	top := shade(c, 1.2)
	left := c
	right := shade(c, 0.7)
	// Roof diamond.
	for y := 0; y < tileHeight; y++ {
		lo, hi := diamondSpan(y)
		for x := lo; x < hi; x++ {
			img.SetRGBA(x, y, top)
		}
	}
	// Walls below the southern edges, down to ground level.
	for y := tileHeight / 2; y < tileHeight; y++ {
		lo, hi := diamondSpan(y)
		for dy := 1; dy <= h; dy++ {
			for x := lo; x < tileWidth/2; x++ {
				img.SetRGBA(x, y+dy, left)
			}
			for x := tileWidth / 2; x < hi; x++ {
				img.SetRGBA(x, y+dy, right)
			}
		}
	}
	return id
}

// door renders the door overlay blitted as a child sprite onto houses.
func (s *Set) door() sprites.SpriteID {
	id, img := s.register(8, 12, -4, -12)
	c := color.RGBA{60, 40, 24, 255}
	for y := 0; y < 12; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return id
}

// tree renders a trunk with a triangular canopy of the given height.
func (s *Set) tree(h int, canopy color.RGBA) sprites.SpriteID {
	const w = 18
	id, img := s.register(w, h+4, -w/2, -h)
	trunk := color.RGBA{92, 62, 40, 255}
	for y := h - 4; y < h+4; y++ {
		img.SetRGBA(w/2-1, y, trunk)
		img.SetRGBA(w/2, y, trunk)
	}
	for y := 0; y < h-2; y++ {
		half := 1 + y*(w/2-1)/(h-2)
		for x := w/2 - half; x < w/2+half; x++ {
			img.SetRGBA(x, y, canopy)
		}
	}
	return id
}

// cart renders the moving-object sprite.
func (s *Set) cart() sprites.SpriteID {
	const w, h = 20, 12
	id, img := s.register(w, h, -w/2, -h)
	body := color.RGBA{170, 120, 50, 255}
	wheel := color.RGBA{40, 40, 44, 255}
	for y := 0; y < h-3; y++ {
		for x := 1; x < w-1; x++ {
			img.SetRGBA(x, y, body)
		}
	}
	for _, x := range []int{3, w - 4} {
		for y := h - 3; y < h; y++ {
			img.SetRGBA(x, y, wheel)
			img.SetRGBA(x+1, y, wheel)
		}
	}
	return id
}

// shade scales a colour's brightness by f, clamping per channel.
func shade(c color.RGBA, f float64) color.RGBA {
	cl := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{cl(c.R), cl(c.G), cl(c.B), c.A}
}
