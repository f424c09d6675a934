package sim

import (
	"math"

	"isorail.dev/internal/generation"
)

// ScreenPoint is a position in isometric screen space, relative to the map origin
type ScreenPoint struct {
	X, Y float64
}

// Project maps a grid cell to its isometric screen position
func Project(p generation.Point) ScreenPoint {
	return ScreenPoint{
		X: float64(p.X-p.Y) * generation.TileWidthHalf,
		Y: float64(p.X+p.Y) * generation.TileHeightHalf,
	}
}

// Car types, front to back
const (
	CarEngine    = "engine"
	CarPassenger = "passenger"
	CarFreight   = "freight"
	CarTank      = "tank"
	CarCaboose   = "caboose"
)

// DefaultCars is the stock consist
var DefaultCars = []string{CarEngine, CarPassenger, CarFreight, CarPassenger, CarTank, CarFreight, CarCaboose}

const (
	DefaultSpeed      = 0.008
	DefaultCarSpacing = 0.8

	// engineGap is the extra spacing behind the longer engine
	engineGap = 0.25

	wheelRadius    = generation.TileHeightHalf * 0.7 * 0.30
	wheelSpinBoost = 2.5
)

// Train tracks progress along a route. Progress is the fraction of the
// current segment (route point SegmentIndex to SegmentIndex+1) covered.
type Train struct {
	SegmentIndex int
	Progress     float64
	Speed        float64
	CarSpacing   float64
	WheelPhase   float64
	Cars         []string
}

// NewTrain creates a train with the stock consist at the start of a route
func NewTrain(speed float64) *Train {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Train{
		Speed:      speed,
		CarSpacing: DefaultCarSpacing,
		Cars:       append([]string(nil), DefaultCars...),
	}
}

// Reset puts the train back at the start of the route
func (t *Train) Reset() {
	t.SegmentIndex = 0
	t.Progress = 0
	t.WheelPhase = 0
}

// Step advances the train one tick along route. The train restarts from
// the first point after reaching the end. Routes shorter than 2 points are ignored.
func (t *Train) Step(route []generation.Point) {
	if len(route) < 2 {
		return
	}
	segments := len(route) - 1
	if t.SegmentIndex >= segments {
		t.Reset()
	}

	p1 := Project(route[t.SegmentIndex])
	p2 := Project(route[(t.SegmentIndex+1)%len(route)])
	dist := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)

	t.Progress += t.Speed
	circumference := 2 * math.Pi * wheelRadius
	t.WheelPhase += t.Speed * dist / circumference * 2 * math.Pi * wheelSpinBoost

	if t.Progress >= 1 {
		t.Progress--
		t.SegmentIndex++
		if t.SegmentIndex >= segments {
			t.SegmentIndex = 0
			t.Progress = 0
		}
	}
}

// CarPose is where one car sits this tick
type CarPose struct {
	Type  string
	Pos   ScreenPoint
	Angle float64 // radians, screen space
}

// carOffset returns how far behind the engine car k runs, in segments
func (t *Train) carOffset(k int) float64 {
	if k == 0 {
		return 0
	}
	return float64(k-1)*t.CarSpacing + t.CarSpacing + engineGap
}

// Poses places every car along route, walking back across segment joints
// (and around the loop) for cars trailing into earlier segments.
func (t *Train) Poses(route []generation.Point) []CarPose {
	if len(route) < 2 {
		return nil
	}
	segments := len(route) - 1
	poses := make([]CarPose, 0, len(t.Cars))

	for k, kind := range t.Cars {
		progress := t.Progress - t.carOffset(k)
		seg := t.SegmentIndex
		for progress < 0 {
			seg = (seg - 1 + segments) % segments
			progress++
		}
		if seg < 0 || seg >= segments {
			continue
		}

		p1, p2 := Project(route[seg]), Project(route[seg+1])
		poses = append(poses, CarPose{
			Type: kind,
			Pos: ScreenPoint{
				X: p1.X + (p2.X-p1.X)*progress,
				Y: p1.Y + (p2.Y-p1.Y)*progress,
			},
			Angle: math.Atan2(p2.Y-p1.Y, p2.X-p1.X),
		})
	}
	return poses
}

// WheelCycle returns the wheel rotation as a fraction of a turn in [0,1)
func (t *Train) WheelCycle() float64 {
	c := math.Mod(t.WheelPhase, 2*math.Pi) / (2 * math.Pi)
	if c < 0 {
		c++
	}
	return c
}
