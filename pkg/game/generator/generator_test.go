// Package generator tests world generation: determinism per seed, terrain
// band invariants, and town and cart placement.
package generator

import (
	"strings"
	"testing"

	"isoworld/pkg/game/art"
	"isoworld/pkg/game/world"
)

func TestGenerate_SameSeedSameWorld(t *testing.T) {
	set := art.BuildSet()
	a := Generate(48, 48, 12345, set)
	b := Generate(48, 48, 12345, set)

	if len(a.Tiles) != len(b.Tiles) {
		t.Fatalf("tile counts differ: %d vs %d", len(a.Tiles), len(b.Tiles))
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs between runs: %+v vs %+v", i, a.Tiles[i], b.Tiles[i])
		}
	}
	if len(a.Towns) != len(b.Towns) {
		t.Fatalf("town counts differ: %d vs %d", len(a.Towns), len(b.Towns))
	}
	for i := range a.Towns {
		if a.Towns[i] != b.Towns[i] {
			t.Errorf("town %d differs: %+v vs %+v", i, a.Towns[i], b.Towns[i])
		}
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	set := art.BuildSet()
	a := Generate(48, 48, 1, set)
	b := Generate(48, 48, 2, set)

	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			return
		}
	}
	t.Error("two different seeds produced identical worlds")
}

func TestGenerate_TerrainInvariants(t *testing.T) {
	m := Generate(64, 64, 99, art.BuildSet())

	for ty := 0; ty < m.H; ty++ {
		for tx := 0; tx < m.W; tx++ {
			tile := m.At(tx, ty)
			if tile.Height > maxLevel {
				t.Fatalf("tile (%d,%d) height %d exceeds the maximum", tx, ty, tile.Height)
			}
			switch tile.Terrain {
			case art.TerrainWater, art.TerrainSand:
				if tile.Height != 0 {
					t.Fatalf("tile (%d,%d) is %d terrain at height %d", tx, ty, tile.Terrain, tile.Height)
				}
			}
			if tile.Trees > 0 && tile.Terrain != art.TerrainGrass {
				t.Fatalf("tile (%d,%d) grows trees on terrain %d", tx, ty, tile.Terrain)
			}
			if tile.Trees > 3 {
				t.Fatalf("tile (%d,%d) has %d trees", tx, ty, tile.Trees)
			}
		}
	}
}

func TestGenerate_TownsAreWellFormed(t *testing.T) {
	m := Generate(64, 64, 7, art.BuildSet())

	if len(m.Towns) > townCount {
		t.Fatalf("got %d towns, want at most %d", len(m.Towns), townCount)
	}
	seenNames := make(map[string]bool)
	for _, town := range m.Towns {
		if town.Name == "" {
			t.Error("town with an empty name")
		}
		if seenNames[town.Name] {
			t.Errorf("town name %q used twice", town.Name)
		}
		seenNames[town.Name] = true
		if !m.Contains(town.TX, town.TY) {
			t.Errorf("town %q centred off-map at (%d,%d)", town.Name, town.TX, town.TY)
		}
		if town.Population%17 != 0 {
			t.Errorf("town %q population %d is not per-house", town.Name, town.Population)
		}
	}

	// Every town that placed houses put down exactly one tower landmark.
	towers := 0
	for i := range m.Tiles {
		if m.Tiles[i].Building == world.BuildingTower {
			towers++
		}
	}
	populated := 0
	for _, town := range m.Towns {
		if town.Population > 0 {
			populated++
		}
	}
	if towers != populated {
		t.Errorf("got %d towers for %d populated towns", towers, populated)
	}
}

func TestGenerate_CartsStartOnTheMap(t *testing.T) {
	m := Generate(32, 32, 3, art.BuildSet())

	if len(m.Carts) != cartCount {
		t.Fatalf("got %d carts, want %d", len(m.Carts), cartCount)
	}
	for i, c := range m.Carts {
		if c.X < 0 || c.X >= 32*16 || c.Y < 0 || c.Y >= 32*16 {
			t.Errorf("cart %d starts off-map at (%d,%d)", i, c.X, c.Y)
		}
		if c.DX*c.DY != 0 || (c.DX == 0 && c.DY == 0) {
			t.Errorf("cart %d moves diagonally or not at all: (%d,%d)", i, c.DX, c.DY)
		}
	}
}

func TestDescribe(t *testing.T) {
	m := Generate(32, 32, 3, art.BuildSet())
	s := Describe(m)
	if !strings.HasPrefix(s, "32x32 tiles") {
		t.Errorf("Describe = %q", s)
	}
}
