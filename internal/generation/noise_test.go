package generation

import "testing"

func TestValueSourceDeterministic(t *testing.T) {
	a := ValueSource{Seed: 3}
	b := ValueSource{Seed: 3}
	for y := -5; y < 20; y++ {
		for x := -5; x < 20; x++ {
			if a.At(x, y, ChannelElevation) != b.At(x, y, ChannelElevation) {
				t.Fatalf("At(%d, %d) differs between equal sources", x, y)
			}
		}
	}
}

func TestValueSourceRange(t *testing.T) {
	for _, seed := range []int64{0, 1, -4, 99999} {
		vs := ValueSource{Seed: seed}
		for _, ch := range []float64{ChannelBuildingCount, ChannelTreeCount, ChannelElevation, ChannelLake, ChannelCityRow, ChannelCityCol} {
			for y := 0; y < 40; y++ {
				for x := 0; x < 40; x++ {
					v := vs.At(x, y, ch)
					if v < 0 || v >= 1 {
						t.Fatalf("seed %d At(%d, %d, %v) = %v, want [0,1)", seed, x, y, ch, v)
					}
				}
			}
		}
	}
}

func TestValueSourceChannelsDiffer(t *testing.T) {
	vs := ValueSource{}
	same := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			if vs.At(x, y, ChannelElevation) == vs.At(x, y, ChannelLake) {
				same++
			}
		}
	}
	if same > 0 {
		t.Errorf("%d cells have identical elevation and lake values", same)
	}
}

func TestValueSourceSeedChangesOutput(t *testing.T) {
	a, b := ValueSource{Seed: 1}, ValueSource{Seed: 2}
	diff := 0
	for x := 0; x < 50; x++ {
		if a.At(x, x, ChannelElevation) != b.At(x, x, ChannelElevation) {
			diff++
		}
	}
	if diff == 0 {
		t.Error("different seeds produced identical values")
	}
}

func TestValueSourceSpread(t *testing.T) {
	vs := ValueSource{}
	var buckets [10]int
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			buckets[int(vs.At(x, y, ChannelElevation)*10)]++
		}
	}
	for i, n := range buckets {
		// 2500 samples, 250 expected per bucket
		if n < 150 || n > 350 {
			t.Errorf("bucket %d holds %d samples, distribution looks skewed", i, n)
		}
	}
}
