package generation

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestSynthesizeDeterministic(t *testing.T) {
	for _, seed := range []int64{0, 42} {
		a := Synthesize(25, 25, ValueSource{Seed: seed})
		b := Synthesize(25, 25, ValueSource{Seed: seed})
		if !a.Equal(b) {
			t.Fatalf("seed %d: grids differ between runs\n%s", seed, spew.Sdump(a.Cells))
		}
	}
}

func TestSynthesizeDimensions(t *testing.T) {
	g := Synthesize(30, 12, ValueSource{})
	if g.Cols != 30 || g.Rows != 12 {
		t.Fatalf("got %dx%d, want 30x12", g.Cols, g.Rows)
	}
	if len(g.Cells) != 12 {
		t.Fatalf("got %d rows of cells, want 12", len(g.Cells))
	}
	for r, row := range g.Cells {
		if len(row) != 30 {
			t.Fatalf("row %d has %d cells, want 30", r, len(row))
		}
	}
	if n := g.Count(City); n != 0 {
		t.Errorf("fresh terrain holds %d cities", n)
	}
}

func inSpecialRegion(c, r, cols, rows int) bool {
	for _, reg := range specialRegions {
		if reg.contains(c, r, cols, rows) {
			return true
		}
	}
	return false
}

func TestSynthesizeClassification(t *testing.T) {
	const cols, rows = 40, 32
	vs := ValueSource{Seed: 5}
	g := Synthesize(cols, rows, vs)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			got := g.Cells[r][c]
			f := Falloff(c, r, cols, rows)

			if inSpecialRegion(c, r, cols, rows) {
				if l := vs.At(c, r, ChannelLake); l > regionThreshold {
					want := Sand
					if l > regionWater {
						want = Water
					}
					if got != want {
						t.Errorf("region cell (%d,%d) lake=%.3f = %s, want %s", c, r, l, got, want)
					}
					continue
				}
			}

			switch {
			case f >= coastRadius:
				if got != Water {
					t.Errorf("cell (%d,%d) falloff %.3f = %s, want water", c, r, f, got)
				}
			case f >= landRadius:
				if got != Sand {
					t.Errorf("cell (%d,%d) falloff %.3f = %s, want sand", c, r, f, got)
				}
			default:
				if got == Water || got == Sand {
					t.Errorf("interior cell (%d,%d) falloff %.3f = %s", c, r, f, got)
				}
				if got == Mountain && f >= mountainRadius {
					t.Errorf("mountain at (%d,%d) outside the mountain radius", c, r)
				}
			}
		}
	}
}

func TestSynthesizeIslandShape(t *testing.T) {
	g := Synthesize(25, 25, ValueSource{})
	corners := []Point{{0, 0}, {24, 0}, {0, 24}, {24, 24}}
	for _, p := range corners {
		if got, _ := g.At(p); got != Water {
			t.Errorf("corner %v = %s, want water", p, got)
		}
	}
	// (12,3) sits in the coastal band outside both special regions
	if got, _ := g.At(Point{12, 3}); got != Sand {
		t.Errorf("(12,3) = %s, want sand", got)
	}
	land := g.Count(Grass) + g.Count(Forest) + g.Count(Mountain)
	if land == 0 {
		t.Fatal("island has no interior land")
	}
}

func TestGridCodesInvertsParse(t *testing.T) {
	rows := []string{"gwscmf", "ffmmgg"}
	g := mustParseGrid(t, rows...)
	got := g.Codes()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], rows[i])
		}
	}
	back := mustParseGrid(t, Synthesize(9, 7, ValueSource{}).Codes()...)
	if !back.Equal(Synthesize(9, 7, ValueSource{})) {
		t.Error("synthesized grid did not survive Codes/ParseGrid")
	}
}
