// Package generator builds the procedural demo world: a noise-based
// heightmap with terrain bands, tree cover, and a few named towns whose
// houses cluster around their centre.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/game/art"
	"isoworld/pkg/game/world"
)

// Tuning knobs for the generated world.
const (
	maxLevel      = 4   // highest terrain elevation in height levels
	seaLevel      = 0.0 // noise value below which a tile is water
	treeThreshold = 0.4
	townCount     = 3
	housesPerTown = 9
	cartCount     = 6
)

var townNames = []string{
	"Eastvale", "Northford", "Saltmere", "Greyhollow", "Windrow",
	"Ashfen", "Dunbright", "Lowcombe",
}

// Generate builds a w x h tile map from the given seed. The same seed always
// yields the same map.
func Generate(w, h int, seed int64, set *art.Set) *world.Map {
	m := world.NewMap(w, h, set)
	r := rand.New(rand.NewSource(seed))

	elevation := NewSimplexNoise(seed)
	forest := NewSimplexNoise(seed + 1)

	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			t := m.At(tx, ty)

			e := elevation.FractalNoise2D(float64(tx)/24, float64(ty)/24, 4)
			switch {
			case e < seaLevel:
				t.Terrain = art.TerrainWater
				t.Height = 0
			case e < 0.12:
				t.Terrain = art.TerrainSand
				t.Height = 0
			default:
				level := int((e - 0.12) * 6)
				if level > maxLevel {
					level = maxLevel
				}
				t.Terrain = art.TerrainGrass
				if level >= 3 {
					t.Terrain = art.TerrainRock
				}
				t.Height = uint8(level)
			}

			if t.Terrain == art.TerrainGrass && forest.FractalNoise2D(float64(tx)/10, float64(ty)/10, 3) > treeThreshold {
				t.Trees = uint8(1 + r.Intn(3))
				t.TreeKind = uint8(r.Intn(3))
			}
		}
	}

	placeTowns(m, r)
	placeCarts(m, r)
	return m
}

// placeTowns picks town centres on flat grass and surrounds each with
// houses. A reservation set keeps towns from building on each other's tiles.
func placeTowns(m *world.Map, r *rand.Rand) {
	reserved := mapset.New[world.TileIndex]()
	names := r.Perm(len(townNames))

	for n := 0; n < townCount; n++ {
		tx, ty, ok := findTownSite(m, r, reserved)
		if !ok {
			continue
		}

		town := world.Town{
			Name: townNames[names[n%len(names)]],
			TX:   tx,
			TY:   ty,
		}

		placed := 0
		for attempt := 0; attempt < housesPerTown*6 && placed < housesPerTown; attempt++ {
			hx := tx + r.Intn(9) - 4
			hy := ty + r.Intn(9) - 4
			if !m.Contains(hx, hy) || reserved.Has(m.Index(hx, hy)) {
				continue
			}
			t := m.At(hx, hy)
			if t.Terrain != art.TerrainGrass || t.Trees > 0 {
				continue
			}
			switch {
			case placed == 0:
				t.Building = world.BuildingTower // each town gets one landmark
			case r.Intn(2) == 0:
				t.Building = world.BuildingHouse
			default:
				t.Building = world.BuildingHouse2
			}
			reserved.Put(m.Index(hx, hy))
			placed++
		}
		town.Population = 17 * placed
		m.Towns = append(m.Towns, town)
	}
}

// findTownSite looks for a grass tile away from already reserved ground; ok
// is false when no spot was found in a bounded number of tries.
func findTownSite(m *world.Map, r *rand.Rand, reserved mapset.Set[world.TileIndex]) (int, int, bool) {
	for attempt := 0; attempt < 100; attempt++ {
		tx := 4 + r.Intn(m.W-8)
		ty := 4 + r.Intn(m.H-8)
		if m.At(tx, ty).Terrain != art.TerrainGrass || reserved.Has(m.Index(tx, ty)) {
			continue
		}
		return tx, ty, true
	}
	return 0, 0, false
}

// placeCarts scatters carts on the map, each moving along one grid axis.
func placeCarts(m *world.Map, r *rand.Rand) {
	for i := 0; i < cartCount; i++ {
		c := world.Cart{
			X: r.Intn(m.W * geometry.TileSize),
			Y: r.Intn(m.H * geometry.TileSize),
		}
		if i%2 == 0 {
			c.DX = 1
		} else {
			c.DY = 1
		}
		m.Carts = append(m.Carts, c)
	}
}

// Describe returns a short human-readable summary of a generated map, used
// by the demo's startup log.
func Describe(m *world.Map) string {
	return fmt.Sprintf("%dx%d tiles, %d towns, %d carts", m.W, m.H, len(m.Towns), len(m.Carts))
}
