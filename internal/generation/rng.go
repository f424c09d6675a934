package generation

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a pseudo-random float64 in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Uint64() >> 33) % uint64(n))
}

// NamePool hands out names without replacement
type NamePool struct {
	names []string
	rng   *RNG
}

// NewNamePool copies names into a pool drawn from by rng
func NewNamePool(names []string, rng *RNG) *NamePool {
	return &NamePool{names: append([]string(nil), names...), rng: rng}
}

// Draw removes and returns a random name; ok is false once the pool is empty
func (p *NamePool) Draw() (string, bool) {
	if len(p.names) == 0 {
		return "", false
	}
	i := p.rng.Intn(len(p.names))
	name := p.names[i]
	p.names = append(p.names[:i], p.names[i+1:]...)
	return name, true
}

// Remaining returns how many names are left
func (p *NamePool) Remaining() int {
	return len(p.names)
}

// DefaultCityNames is the stock name pool
var DefaultCityNames = []string{
	"Springfield", "Riverside", "Oakdale", "Fairview", "Madison", "Georgetown", "Arlington", "Salem",
	"Greenville", "Franklin", "Clinton", "Bristol", "Dover", "Manchester", "Chester", "Milton",
	"Auburn", "Bedford", "Burlington", "Clayton", "Dayton", "Harrison", "Jackson", "Lexington",
}
