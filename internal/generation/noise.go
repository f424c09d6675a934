package generation

import "math"

// Channels separate independent uses of the value source so that, for
// example, the lake mask does not line up with elevation.
const (
	ChannelBuildingCount = 1
	ChannelTreeCount     = 200
	ChannelElevation     = 300
	ChannelLake          = 301
	ChannelCityRow       = 400
	ChannelCityCol       = 401
)

// ChannelStride spaces the channel range of one seed away from the next.
const ChannelStride = 1000

// ValueSource maps integer coordinates and a channel to a reproducible
// value in [0, 1). It holds no state besides the seed.
type ValueSource struct {
	Seed int64
}

// At returns the value for (x, y) on the given channel
func (v ValueSource) At(x, y int, channel float64) float64 {
	ch := channel + float64(v.Seed)*ChannelStride
	fx, fy := nonZero(float64(x)), nonZero(float64(y))
	ch = nonZero(ch)

	h := math.Sin(fx*12.9898+fy*78.233+ch*5.4321) * 43758.5453123
	f := h - math.Floor(h)
	if f >= 1 {
		// Floor rounding on huge magnitudes can land exactly on 1.
		return 0
	}
	return f
}

// nonZero keeps a zero coordinate from cancelling its term in the hash.
func nonZero(f float64) float64 {
	if f == 0 {
		return 0.1
	}
	return f
}
