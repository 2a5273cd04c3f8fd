// Package world holds the demo world: a tile map with terrain, elevation,
// buildings, trees and a few moving carts, exposed to the engine as a
// viewport.Scene.
package world

import (
	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/game/art"
)

// TileIndex identifies a tile as ty*W + tx.
type TileIndex int

// BuildingKind says what, if anything, is built on a tile.
type BuildingKind uint8

const (
	BuildingNone BuildingKind = iota
	BuildingHouse
	BuildingHouse2
	BuildingTower
)

// Tile is one cell of the map.
type Tile struct {
	Height   uint8 // elevation in height levels
	Terrain  art.Terrain
	Building BuildingKind
	Trees    uint8 // number of trees on the tile, 0..3
	TreeKind uint8 // which tree sprite the stand uses
}

// Town is a named settlement; its name is drawn as a viewport overlay.
type Town struct {
	Name       string
	TX, TY     int
	Population int
}

// Cart is a simple moving object travelling along one grid axis.
type Cart struct {
	X, Y int // world units
	DX   int // world units per tick along X
	DY   int
}

// Map is the demo world.
type Map struct {
	W, H  int
	Tiles []Tile
	Towns []Town
	Carts []Cart

	Art *art.Set
}

// NewMap returns an empty map of the given size in tiles.
func NewMap(w, h int, set *art.Set) *Map {
	return &Map{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
		Art:   set,
	}
}

// Index returns the tile index for tile coordinates.
func (m *Map) Index(tx, ty int) TileIndex {
	return TileIndex(ty*m.W + tx)
}

// At returns the tile at the given tile coordinates.
func (m *Map) At(tx, ty int) *Tile {
	return &m.Tiles[ty*m.W+tx]
}

// Contains reports whether the tile coordinates are on the map.
func (m *Map) Contains(tx, ty int) bool {
	return tx >= 0 && tx < m.W && ty >= 0 && ty < m.H
}

// Center returns the world position of the map's middle tile at ground
// height, a reasonable place to aim a viewport at.
func (m *Map) Center() geometry.WorldPos {
	tx, ty := m.W/2, m.H/2
	return geometry.WorldPos{
		X: tx * geometry.TileSize,
		Y: ty * geometry.TileSize,
		Z: m.TileHeight(tx, ty),
	}
}

// Advance moves the carts by one tick, bouncing them off the map borders.
func (m *Map) Advance() {
	maxX := m.W * geometry.TileSize
	maxY := m.H * geometry.TileSize
	for i := range m.Carts {
		c := &m.Carts[i]
		c.X += c.DX
		c.Y += c.DY
		if c.X < 0 || c.X >= maxX {
			c.DX = -c.DX
			c.X += 2 * c.DX
		}
		if c.Y < 0 || c.Y >= maxY {
			c.DY = -c.DY
			c.Y += 2 * c.DY
		}
	}
}
