package sim

import (
	"math"
	"math/rand/v2"

	"isorail.dev/internal/generation"
)

// Particle is one puff of smoke in screen space
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Life        int
	MaxLife     int
	InitialSize float64
	GrowthRate  float64
	Shade       int // base grey level, 0-255
	Turbulence  float64
}

// Ratio returns how far through its life the particle is, in [0,1]
func (p *Particle) Ratio() float64 {
	return float64(p.Life) / float64(p.MaxLife)
}

// Size returns the current radius
func (p *Particle) Size() float64 {
	return p.InitialSize * (1 + p.Ratio()*p.GrowthRate)
}

// Alpha returns the current opacity; it falls off faster near the end
func (p *Particle) Alpha() float64 {
	return math.Max(0, math.Pow(1-p.Ratio(), 1.5)*0.7)
}

const (
	windStrength = 0.4
	// maxParticles caps the pool size
	maxParticles = 512
)

// Smoke is a pool of smoke particles
type Smoke struct {
	rng       *rand.Rand
	particles []*Particle
}

// NewSmoke creates an empty particle pool drawing from rng
func NewSmoke(rng *rand.Rand) *Smoke {
	return &Smoke{rng: rng}
}

// Spawn emits a puff at (x, y). The wind pushes it opposite to the
// direction of travel given by angle.
func (s *Smoke) Spawn(x, y, angle float64) {
	if len(s.particles) >= maxParticles {
		return
	}
	windX := math.Cos(angle+math.Pi) * windStrength
	windY := math.Sin(angle+math.Pi) * windStrength * 0.3

	s.particles = append(s.particles, &Particle{
		X:           x,
		Y:           y,
		VX:          (s.rng.Float64()-0.5)*0.2 + windX,
		VY:          -0.2 - s.rng.Float64()*0.3 + windY,
		MaxLife:     80 + s.rng.IntN(40),
		InitialSize: 1 + s.rng.Float64()*2,
		GrowthRate:  1.5 + s.rng.Float64()*0.5,
		Shade:       240 + s.rng.IntN(15),
		Turbulence:  s.rng.Float64() * 0.1,
	})
}

// Update moves every particle one tick and drops the expired ones
func (s *Smoke) Update() {
	live := s.particles[:0]
	for _, p := range s.particles {
		p.X += p.VX + (s.rng.Float64()-0.5)*p.Turbulence
		p.Y += p.VY + (s.rng.Float64()-0.5)*p.Turbulence
		p.VX *= 0.995
		p.VY *= 0.998

		p.Life++
		if p.Life < p.MaxLife {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = live
}

// Particles returns the live particles. The slice is reused by Update.
func (s *Smoke) Particles() []*Particle {
	return s.particles
}

// Len returns the number of live particles
func (s *Smoke) Len() int {
	return len(s.particles)
}

// Smokestack returns the top of the engine's chimney for an engine pose
func Smokestack(engine CarPose) ScreenPoint {
	carWidth := generation.TileWidthHalf * 0.65 * 1.4
	carHeight := generation.TileHeightHalf * 0.75 * 1.15
	stackHeight := carHeight * 0.7

	localX := carWidth * 0.30
	localY := -(carHeight/2 + stackHeight/2)
	if math.Abs(engine.Angle) > math.Pi/2 {
		// Cars are mirrored when heading left so they stay upright
		localY = -localY
	}

	sin, cos := math.Sincos(engine.Angle)
	return ScreenPoint{
		X: engine.Pos.X + localX*cos - localY*sin,
		Y: engine.Pos.Y + localX*sin + localY*cos - stackHeight/2,
	}
}

// MaybePuff spawns smoke from the engine while the wheel is in the
// driving part of its turn.
func (s *Smoke) MaybePuff(t *Train, engine CarPose) bool {
	if t.WheelCycle() >= 0.7 {
		return false
	}
	top := Smokestack(engine)
	s.Spawn(top.X, top.Y, engine.Angle)
	return true
}
