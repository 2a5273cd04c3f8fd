// Package sprites holds the metadata side of the sprite store: pixel extents
// and blit offsets per sprite id, palette ids, and the transparency modifier.
// Actual bitmaps live with the renderer backends; the engine core only ever
// needs extents.
package sprites

import "fmt"

// SpriteID identifies one sprite bitmap. The top bit is a palette modifier
// flag; the remaining bits are the index into the atlas.
type SpriteID uint32

const (
	// EmptyBoundingBox is a reserved id for sort-only sprites: they carry a
	// bounding box into depth sorting but are never blitted.
	EmptyBoundingBox SpriteID = 0

	spriteMask SpriteID = 0x3FFFFFFF

	// TransparencyModifier marks the sprite to be blitted see-through.
	TransparencyModifier SpriteID = 1 << 31
)

// Base strips the modifier bits, leaving the atlas index.
func (id SpriteID) Base() SpriteID {
	return id & spriteMask
}

// IsTransparent reports whether the transparency modifier is set.
func (id SpriteID) IsTransparent() bool {
	return id&TransparencyModifier != 0
}

// PaletteID selects a recolouring applied while blitting.
type PaletteID uint8

const (
	PaletteNone PaletteID = iota
	// PaletteToTransparent is the palette forced onto transparent sprites.
	PaletteToTransparent
	PaletteRed
	PaletteGreen
	PaletteBlue
	PaletteYellow
	PaletteGrey
)

// SubRect restricts a blit to part of a sprite, in pixels relative to the
// sprite's own top-left corner. Right and Bottom are inclusive.
type SubRect struct {
	Left, Top     int
	Right, Bottom int
}

// Extent is the pixel footprint of a sprite: its bitmap size and the offset
// of the bitmap's top-left corner from the sprite's projected anchor point.
type Extent struct {
	Width  int
	Height int
	XOffs  int
	YOffs  int
}

// Atlas maps sprite ids to their extents. Lookups are read-only and cheap;
// registration happens once at startup.
type Atlas struct {
	extents []Extent
}

// NewAtlas returns an atlas with the EmptyBoundingBox id pre-registered.
func NewAtlas() *Atlas {
	return &Atlas{extents: make([]Extent, 1)}
}

// Register adds a sprite extent and returns its id.
func (a *Atlas) Register(e Extent) SpriteID {
	a.extents = append(a.extents, e)
	return SpriteID(len(a.extents) - 1)
}

// Extent returns the pixel footprint of the given sprite. Passing an id that
// was never registered is a caller bug and panics.
func (a *Atlas) Extent(id SpriteID) Extent {
	idx := id.Base()
	if int(idx) >= len(a.extents) {
		panic(fmt.Sprintf("sprites: unknown sprite id %d", idx))
	}
	return a.extents[idx]
}

// Len returns the number of registered sprites, including the reserved id.
func (a *Atlas) Len() int {
	return len(a.extents)
}
