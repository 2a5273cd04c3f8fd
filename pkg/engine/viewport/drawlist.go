// Package viewport implements the per-region draw-list construction and
// depth-order resolution for the isometric world view. A Viewport collects
// drawing requests from the scene into a DrawList, resolves the paint order
// of the depth-sortable sprites, and hands the result to a Painter.
package viewport

import (
	"fmt"
	"image/color"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/sprites"
)

// GroundSprite is a flat sprite tied to a ground tile. It never participates
// in depth sorting; all ground sprites paint before the sorted sprites.
type GroundSprite struct {
	Image sprites.SpriteID
	Pal   sprites.PaletteID
	Sub   *sprites.SubRect
	X, Y  int // blit position in virtual pixels
}

// ParentSprite is a depth-sortable sprite: a screen blit plus a world-space
// bounding box used to resolve occlusion, and an optional chain of child
// sprites painted immediately after it.
type ParentSprite struct {
	Image sprites.SpriteID
	Pal   sprites.PaletteID
	Sub   *sprites.SubRect

	X, Y int // blit position in virtual pixels
	// Left and Top are the top-left corner of the sprite's screen footprint,
	// the reference point for child sprite offsets.
	Left, Top int

	Box geometry.Box

	// FirstChild heads the child chain in the DrawList's child arena,
	// noChild if the sprite has none.
	FirstChild int
}

// ChildSprite is painted at a fixed pixel offset from its parent's footprint
// corner, directly after the parent. It has no depth of its own.
type ChildSprite struct {
	Image sprites.SpriteID
	Pal   sprites.PaletteID
	Sub   *sprites.SubRect
	X, Y  int // offset from the parent's Left/Top
	Next  int // next sibling in the arena, noChild at the end
}

// StringOverlay is a text label drawn after all sprites. Key is a
// translation key resolved by the painter; X and Y are in virtual pixels.
type StringOverlay struct {
	Key    string
	Args   []any
	X, Y   int
	Width  int // pixel width of the label, 0 to size to the text
	Colour color.RGBA
	Frame  bool // draw a background frame in Colour behind the text
}

// FoundationPart selects one of the two per-tile foundation slots.
type FoundationPart int

const (
	// FoundationPartNone means no foundation has been drawn for this tile.
	FoundationPartNone FoundationPart = -1
	// FoundationPartNormal is the foundation under the main tile surface.
	FoundationPartNormal FoundationPart = 0
	// FoundationPartHalftile is the foundation under a raised half tile.
	FoundationPartHalftile FoundationPart = 1

	foundationPartCount = 2
)

// combineState tracks sprite-combine blocks (StartCombine/EndCombine).
type combineState uint8

const (
	combineNone combineState = iota
	combinePending
	combineActive
)

// attachKind says where newly added child sprites link in.
type attachKind uint8

const (
	// attachNone: child sprites are silently dropped. This is the state
	// after a sortable sprite was clipped away, and it is deliberately not
	// an error: a clipped parent legitimately has no children.
	attachNone attachKind = iota
	attachParent
	attachFoundation
)

const noChild = -1

// attachPoint is the current target for child sprites: nothing, the most
// recently created parent sprite, or a foundation slot.
type attachPoint struct {
	kind   attachKind
	parent int            // parent sprite index when kind == attachParent
	part   FoundationPart // slot when kind == attachFoundation
}

// foundationSlot re-parents ground sprites of a tile onto a foundation
// sprite, so terrain drawn on top of a foundation inherits its depth.
type foundationSlot struct {
	parent    int            // parent sprite index, noChild when the slot is empty
	offset    geometry.Point // pixel offset applied to ground children
	lastChild int            // tail of the slot's chain, noChild when empty
}

// DrawList accumulates the drawable primitives of one region draw. It is
// owned by a single Viewport and passed down the scene's draw callbacks; it
// is not safe for concurrent use and must not be re-entered from a callback.
type DrawList struct {
	atlas *sprites.Atlas
	clip  geometry.ClipRect

	ground   []GroundSprite
	parents  []ParentSprite
	children []ChildSprite // arena; chains link through Next indices
	overlays []StringOverlay

	combine combineState

	// drawBoxes widens sprite footprints to cover their bounding-box
	// outlines, so box-visible sprites survive the clip test.
	drawBoxes bool

	attach    attachPoint
	lastChild int // tail of the active parent's chain, noChild when empty

	foundation     [foundationPartCount]foundationSlot
	foundationPart FoundationPart

	curTile geometry.WorldPos // origin of the tile being drawn
}

// NewDrawList returns an empty draw list resolving sprite extents from atlas.
func NewDrawList(atlas *sprites.Atlas) *DrawList {
	return &DrawList{atlas: atlas}
}

// reset prepares the list for a new region draw, keeping the allocated
// capacity of the previous one.
func (d *DrawList) reset(clip geometry.ClipRect) {
	d.clip = clip
	d.ground = d.ground[:0]
	d.parents = d.parents[:0]
	d.children = d.children[:0]
	d.overlays = d.overlays[:0]
	d.combine = combineNone
	d.attach = attachPoint{kind: attachNone}
	d.lastChild = noChild
	d.beginTile(geometry.WorldPos{})
}

// beginTile resets the per-tile foundation state and records the tile origin
// that relative ground-sprite positions refer to.
func (d *DrawList) beginTile(origin geometry.WorldPos) {
	d.curTile = origin
	d.foundationPart = FoundationPartNone
	for i := range d.foundation {
		d.foundation[i] = foundationSlot{parent: noChild, lastChild: noChild}
	}
}

// Clip returns the clip rectangle of the region being accumulated.
func (d *DrawList) Clip() geometry.ClipRect {
	return d.clip
}

// AddGroundSprite adds a flat sprite for the current tile at the given world
// position. If a foundation slot is active for the tile, the sprite becomes
// a child of the foundation's parent sprite instead, so it stays correctly
// layered relative to the raised terrain.
func (d *DrawList) AddGroundSprite(image sprites.SpriteID, pal sprites.PaletteID, pos geometry.WorldPos, sub *sprites.SubRect) {
	part := d.foundationPart
	if part == FoundationPartNone {
		part = FoundationPartNormal
	}
	if d.foundation[part].parent != noChild {
		rel := geometry.ProjectPos(pos.Sub(d.curTile))
		d.addChildToFoundation(image, pal, part, rel.X, rel.Y, sub)
		return
	}
	pt := geometry.ProjectPos(pos)
	d.ground = append(d.ground, GroundSprite{Image: image, Pal: pal, Sub: sub, X: pt.X, Y: pt.Y})
}

// AddSortableSprite adds a depth-sortable sprite at the given world position.
// The bounding box spans (pos+off) .. (pos+max(off,extent)-1) per axis; w and
// h extend along world X and Y, dz along Z, and offX/offY/offZ extend the box
// in the negative direction. A sprite whose screen footprint misses the clip
// rectangle is dropped entirely, together with any child sprites added for
// it afterwards. Inside a combine block the call attaches the sprite as a
// child of the block's first surviving sprite instead.
func (d *DrawList) AddSortableSprite(image sprites.SpriteID, pal sprites.PaletteID, pos geometry.WorldPos,
	w, h, dz int, offX, offY, offZ int, transparent bool, sub *sprites.SubRect) {

	if transparent {
		image |= sprites.TransparencyModifier
		pal = sprites.PaletteToTransparent
	}

	if d.combine == combineActive {
		d.addCombinedSprite(image, pal, pos, sub)
		return
	}

	// Until the sprite survives clipping there is nothing to attach
	// children to.
	d.attach = attachPoint{kind: attachNone}
	d.lastChild = noChild

	pt := geometry.ProjectPos(pos)
	x, y := pt.X, pt.Y

	// Screen footprint: from the bitmap extent, or for sort-only sprites
	// from the projected bounding box corners.
	var left, top, right, bottom int
	if image.Base() == sprites.EmptyBoundingBox {
		left = geometry.Project(pos.X+w, pos.Y+offY, pos.Z+offZ).X
		right = geometry.Project(pos.X+offX, pos.Y+h, pos.Z+offZ).X + 1
		top = geometry.Project(pos.X+offX, pos.Y+offY, pos.Z+dz).Y
		bottom = geometry.Project(pos.X+w, pos.Y+h, pos.Z+offZ).Y + 1
	} else {
		ext := d.atlas.Extent(image)
		left = x + ext.XOffs
		right = left + ext.Width
		top = y + ext.YOffs
		bottom = top + ext.Height

		if d.drawBoxes {
			// The outline can stick out past the bitmap; widen the
			// footprint to the union of both so the outline does not pop
			// at region borders.
			left = min(left, geometry.Project(pos.X+w, pos.Y+offY, pos.Z+offZ).X)
			right = max(right, geometry.Project(pos.X+offX, pos.Y+h, pos.Z+offZ).X+1)
			top = min(top, geometry.Project(pos.X+offX, pos.Y+offY, pos.Z+dz).Y)
			bottom = max(bottom, geometry.Project(pos.X+w, pos.Y+h, pos.Z+offZ).Y+1)
		}
	}

	if d.clip.Excludes(left, top, right, bottom) {
		return
	}

	d.parents = append(d.parents, ParentSprite{
		Image: image,
		Pal:   pal,
		Sub:   sub,
		X:     x,
		Y:     y,
		Left:  left,
		Top:   top,
		Box:   geometry.NewBox(pos, w, h, dz, offX, offY, offZ),

		FirstChild: noChild,
	})
	d.attach = attachPoint{kind: attachParent, parent: len(d.parents) - 1}

	if d.combine == combinePending {
		d.combine = combineActive
	}
}

// addCombinedSprite attaches a sortable sprite added inside an active
// combine block as a child of the block's root sprite, at the screen delta
// between the two projected positions.
func (d *DrawList) addCombinedSprite(image sprites.SpriteID, pal sprites.PaletteID, pos geometry.WorldPos, sub *sprites.SubRect) {
	pt := geometry.ProjectPos(pos)
	ext := d.atlas.Extent(image)

	if d.clip.Excludes(pt.X+ext.XOffs, pt.Y+ext.YOffs, pt.X+ext.XOffs+ext.Width, pt.Y+ext.YOffs+ext.Height) {
		return
	}

	root := &d.parents[len(d.parents)-1]
	d.AddChildSprite(image, pal, pt.X-root.Left, pt.Y-root.Top, false, sub)
}

// AddChildSprite appends a sprite to the chain of the active parent or
// foundation slot, at a pixel offset from the parent's footprint corner. If
// the intended parent was clipped away the call is a silent no-op.
func (d *DrawList) AddChildSprite(image sprites.SpriteID, pal sprites.PaletteID, x, y int, transparent bool, sub *sprites.SubRect) {
	if d.attach.kind == attachNone {
		return
	}

	if transparent {
		image |= sprites.TransparencyModifier
		pal = sprites.PaletteToTransparent
	}

	switch d.attach.kind {
	case attachParent:
		prev := d.lastChild
		idx := d.appendChild(d.attach.parent, prev, ChildSprite{Image: image, Pal: pal, Sub: sub, X: x, Y: y})
		d.lastChild = idx
		// A foundation slot bound to the same parent shares the physical
		// chain; keep its tail in step so later ground sprites link on
		// correctly.
		for i := range d.foundation {
			if d.foundation[i].parent == d.attach.parent && d.foundation[i].lastChild == prev {
				d.foundation[i].lastChild = idx
			}
		}
	case attachFoundation:
		slot := &d.foundation[d.attach.part]
		idx := d.appendChild(slot.parent, slot.lastChild, ChildSprite{Image: image, Pal: pal, Sub: sub, X: x, Y: y})
		slot.lastChild = idx
	}
}

// attachedParent returns the parent index the generic attachment points at,
// or noChild.
func (d *DrawList) attachedParent() int {
	if d.attach.kind == attachParent {
		return d.attach.parent
	}
	return noChild
}

// appendChild stores a child sprite in the arena and links it after prev, or
// as the head of parent's chain when prev is noChild.
func (d *DrawList) appendChild(parent, prev int, cs ChildSprite) int {
	cs.Next = noChild
	d.children = append(d.children, cs)
	idx := len(d.children) - 1
	if prev == noChild {
		d.parents[parent].FirstChild = idx
	} else {
		d.children[prev].Next = idx
	}
	return idx
}

// addChildToFoundation appends a ground sprite to a foundation slot's chain.
// The final offset is the slot's offset plus the projected position of the
// sprite relative to the tile origin.
func (d *DrawList) addChildToFoundation(image sprites.SpriteID, pal sprites.PaletteID, part FoundationPart, extraX, extraY int, sub *sprites.SubRect) {
	slot := &d.foundation[part]
	prevTail := slot.lastChild

	// Temporarily retarget child adds at the foundation chain.
	old, oldLast := d.attach, d.lastChild
	d.attach = attachPoint{kind: attachFoundation, part: part}
	d.AddChildSprite(image, pal, slot.offset.X+extraX, slot.offset.Y+extraY, false, sub)
	d.attach = old

	// If the generic attachment shares this chain, move its tail along so
	// later plain child sprites link after the foundation children.
	if old.kind == attachParent && old.parent == slot.parent && oldLast == prevTail {
		d.lastChild = slot.lastChild
	}
}

// StartCombine opens a combine block: until EndCombine, sortable sprites
// share the bounding box of the block's first surviving sprite and paint in
// call order directly after it. Blocks cannot be nested.
func (d *DrawList) StartCombine() {
	if d.combine != combineNone {
		panic("viewport: StartCombine inside an active combine block")
	}
	d.combine = combinePending
}

// EndCombine closes the combine block opened by StartCombine.
func (d *DrawList) EndCombine() {
	if d.combine == combineNone {
		panic("viewport: EndCombine without StartCombine")
	}
	d.combine = combineNone
}

// BeginFoundationPart activates a foundation slot for the current tile,
// binding it to the most recently created parent sprite. If that sprite was
// clipped away the slot stays empty and ground sprites keep their normal
// path. Successive ground sprites for the tile are added as children of the
// slot's parent.
func (d *DrawList) BeginFoundationPart(part FoundationPart) {
	checkFoundationPart(part)
	d.foundationPart = part
	slot := &d.foundation[part]
	slot.parent = d.attachedParent()
	slot.lastChild = d.lastChild
}

// SetFoundationOffset sets the pixel offset applied to ground sprites that
// are re-parented onto the given foundation slot.
func (d *DrawList) SetFoundationOffset(part FoundationPart, x, y int) {
	checkFoundationPart(part)
	d.foundation[part].offset = geometry.Point{X: x, Y: y}
}

func checkFoundationPart(part FoundationPart) {
	if part != FoundationPartNormal && part != FoundationPartHalftile {
		panic(fmt.Sprintf("viewport: invalid foundation part %d", part))
	}
}

// AddString adds a text overlay at the given virtual pixel position. Width
// fixes the label width in screen pixels; 0 sizes it to the text. Overlays
// paint after every sprite.
func (d *DrawList) AddString(key string, args []any, x, y, width int, colour color.RGBA, frame bool) {
	d.overlays = append(d.overlays, StringOverlay{
		Key:    key,
		Args:   args,
		X:      x,
		Y:      y,
		Width:  width,
		Colour: colour,
		Frame:  frame,
	})
}
