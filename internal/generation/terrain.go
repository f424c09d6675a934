package generation

import "math"

// Island shape thresholds, as a fraction of the elliptical falloff radius
const (
	landRadius     = 0.8
	coastRadius    = 1.0
	mountainRadius = 0.7

	forestThreshold   = 0.15
	mountainThreshold = 0.25

	// falloffDivisor scales half the map to the unit falloff radius
	falloffDivisor = 2.5

	regionThreshold = 0.7
	regionWater     = 0.85
)

// region is an open box given as fractions of the map size
type region struct {
	minX, maxX, minY, maxY float64
}

func (r region) contains(c, row, cols, rows int) bool {
	fc, fr := float64(c), float64(row)
	return fc > float64(cols)*r.minX && fc < float64(cols)*r.maxX &&
		fr > float64(rows)*r.minY && fr < float64(rows)*r.maxY
}

// specialRegions break up the island interior with patches of lake and sand
var specialRegions = []region{
	{0.15, 0.35, 0.15, 0.35},
	{0.65, 0.85, 0.65, 0.85},
}

// Synthesize fills a cols x rows grid with island terrain
func Synthesize(cols, rows int, vs ValueSource) *Grid {
	g := NewGrid(cols, rows, Water)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := baseTerrain(c, r, cols, rows, vs)
			if override, ok := regionTerrain(c, r, cols, rows, vs); ok {
				t = override
			}
			g.Cells[r][c] = t
		}
	}
	return g
}

// Falloff returns the normalized elliptical distance of a cell from the map center
func Falloff(c, r, cols, rows int) float64 {
	dx := math.Abs(float64(c) - float64(cols)/2)
	dy := math.Abs(float64(r) - float64(rows)/2)
	nx := dx / (float64(cols) / falloffDivisor)
	ny := dy / (float64(rows) / falloffDivisor)
	return math.Sqrt(nx*nx + ny*ny)
}

func baseTerrain(c, r, cols, rows int, vs ValueSource) Terrain {
	e := vs.At(c, r, ChannelElevation)
	f := Falloff(c, r, cols, rows)

	switch {
	case f < landRadius:
		if e < forestThreshold {
			return Forest
		}
		if e < mountainThreshold && f < mountainRadius {
			return Mountain
		}
		return Grass
	case f < coastRadius:
		return Sand
	}
	return Water
}

func regionTerrain(c, r, cols, rows int, vs ValueSource) (Terrain, bool) {
	l := vs.At(c, r, ChannelLake)
	if l <= regionThreshold {
		return 0, false
	}
	for _, reg := range specialRegions {
		if reg.contains(c, r, cols, rows) {
			if l > regionWater {
				return Water, true
			}
			return Sand, true
		}
	}
	return 0, false
}
