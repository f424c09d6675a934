package generation

import (
	"fmt"
	"math"
	"sort"
)

// MaxPlacementAttempts bounds the city placement loop
const MaxPlacementAttempts = 2000

// CityTarget returns how many cities a grid of this size asks for
func CityTarget(cols, rows int) int {
	return cols*rows/100 + 2
}

// cityPalettes are the wall/roof colour sets a building may use
var cityPalettes = [][2]string{
	{"#795548", "#A1887F"},
	{"#8D6E63", "#BCAAA4"},
	{"#6D4C41", "#90A4AE"},
}

// PlacementReport summarizes one placement pass
type PlacementReport struct {
	Target   int
	Placed   int
	Attempts int
}

// Shortfall returns how many cities could not be placed
func (r PlacementReport) Shortfall() int {
	return r.Target - r.Placed
}

// CityPlacer converts suitable grass cells into named cities
type CityPlacer struct {
	grid        *Grid
	vs          ValueSource
	names       *NamePool
	target      int
	maxAttempts int
}

// NewCityPlacer creates a placer that mutates grid in place
func NewCityPlacer(grid *Grid, vs ValueSource, names *NamePool) *CityPlacer {
	return &CityPlacer{
		grid:        grid,
		vs:          vs,
		names:       names,
		target:      CityTarget(grid.Cols, grid.Rows),
		maxAttempts: MaxPlacementAttempts,
	}
}

// Place runs the bounded placement loop. Waypoints come back in placement order.
func (cp *CityPlacer) Place() ([]Waypoint, map[Point]CityFeature, PlacementReport) {
	waypoints := make([]Waypoint, 0, cp.target)
	features := make(map[Point]CityFeature)
	report := PlacementReport{Target: cp.target}

	for att := 0; att < cp.maxAttempts && len(waypoints) < cp.target; att++ {
		report.Attempts++
		p := cp.candidate(att)
		if !cp.suitable(p) {
			continue
		}

		cp.grid.Set(p, City)
		name, ok := cp.names.Draw()
		if !ok {
			name = fmt.Sprintf("Town %d", len(waypoints)+1)
		}

		waypoints = append(waypoints, Waypoint{Point: p, Name: name})
		features[p] = CityFeature{Name: name, Buildings: cp.buildings(p)}
	}

	report.Placed = len(waypoints)
	return waypoints, features, report
}

// candidate samples the attempt-th coordinate, keeping off the outer ring
func (cp *CityPlacer) candidate(att int) Point {
	row := int(math.Floor(cp.vs.At(att, att*2, ChannelCityRow)*float64(cp.grid.Rows-2))) + 1
	col := int(math.Floor(cp.vs.At(att*2, att, ChannelCityCol)*float64(cp.grid.Cols-2))) + 1
	return Point{col, row}
}

// suitable requires grass at p and a fully in-bounds 3x3 neighbourhood
// free of water, mountain, forest and other cities.
func (cp *CityPlacer) suitable(p Point) bool {
	if t, ok := cp.grid.At(p); !ok || t != Grass {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			t, ok := cp.grid.At(p.Add(dx, dy))
			if !ok {
				return false
			}
			switch t {
			case Water, Mountain, Forest:
				return false
			case City:
				if dx != 0 || dy != 0 {
					return false
				}
			}
		}
	}
	return true
}

// buildings lays out 8-12 buildings for the city at p, back to front
func (cp *CityPlacer) buildings(p Point) []Building {
	at := func(ch int) float64 { return cp.vs.At(p.X, p.Y, float64(ch)) }

	n := 8 + int(math.Floor(at(ChannelBuildingCount)*5))
	out := make([]Building, 0, n)
	for i := 0; i < n; i++ {
		base := i * 10
		colours := cityPalettes[int(math.Floor(at(base+6)*float64(len(cityPalettes))))]
		out = append(out, Building{
			OffsetX:   (at(base+1) - 0.5) * TileWidthHalf * 0.8,
			OffsetY:   (at(base+2) - 0.5) * TileHeightHalf * 0.6,
			HalfWidth: TileWidthHalf * (0.15 + at(base+3)*0.15),
			HalfDepth: TileHeightHalf * (0.15 + at(base+4)*0.15),
			Height:    TileHeightHalf * (0.8 + at(base+5)*0.7),
			Wall:      colours[0],
			Roof:      colours[1],
		})
	}

	// Painter's order: a higher roof line is drawn first.
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].OffsetY-out[i].Height, out[j].OffsetY-out[j].Height
		if vi != vj {
			return vi < vj
		}
		return out[i].OffsetX < out[j].OffsetX
	})
	return out
}

// PlaceForests builds tree layouts for every forest cell
func PlaceForests(grid *Grid, vs ValueSource) map[Point]ForestFeature {
	features := make(map[Point]ForestFeature)
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			if grid.Cells[r][c] != Forest {
				continue
			}
			at := func(ch int) float64 { return vs.At(c, r, float64(ch)) }

			n := 2 + int(math.Floor(at(ChannelTreeCount)*3))
			trees := make([]Tree, 0, n)
			for i := 0; i < n; i++ {
				base := i * 10
				trees = append(trees, Tree{
					DX:    (at(base+1) - 0.5) * TileWidthHalf * 0.7,
					DY:    (at(base+2) - 0.5) * TileHeightHalf * 0.5,
					Scale: 0.7 + at(base+3)*0.6,
				})
			}
			sort.SliceStable(trees, func(i, j int) bool { return trees[i].DY < trees[j].DY })
			features[Point{c, r}] = ForestFeature{Trees: trees}
		}
	}
	return features
}
