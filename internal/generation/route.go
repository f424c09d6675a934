package generation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

var (
	ErrOutOfBounds = errors.New("point out of bounds")
	ErrNotWalkable = errors.New("point not walkable")
	ErrUnreachable = errors.New("no path between waypoints")
)

// PathError reports the first bad point of a path
type PathError struct {
	Point   Point
	Terrain Terrain
	Err     error
}

func (e *PathError) Error() string {
	if errors.Is(e.Err, ErrNotWalkable) {
		return fmt.Sprintf("%v at %v: %s", e.Err, e.Point, e.Terrain)
	}
	return fmt.Sprintf("%v at %v", e.Err, e.Point)
}

func (e *PathError) Unwrap() error { return e.Err }

// ValidatePath checks that every point is in bounds and walkable.
// An empty path is valid.
func ValidatePath(g *Grid, path []Point) error {
	for _, p := range path {
		t, ok := g.At(p)
		if !ok {
			return &PathError{Point: p, Err: ErrOutOfBounds}
		}
		if !t.Walkable() {
			return &PathError{Point: p, Terrain: t, Err: ErrNotWalkable}
		}
	}
	return nil
}

// IsValid is the boolean form of ValidatePath
func IsValid(g *Grid, path []Point) bool {
	return ValidatePath(g, path) == nil
}

// SegmentFailure records a waypoint pair that could not be joined
type SegmentFailure struct {
	From, To Waypoint
	Err      error
}

// Route is the ordered sequence of cells the train follows
type Route struct {
	Points   []Point
	Fallback bool
	Skipped  []SegmentFailure
}

// Len returns the number of points
func (r *Route) Len() int {
	return len(r.Points)
}

// Continuous reports whether every consecutive pair is 4-adjacent
func (r *Route) Continuous() bool {
	for i := 1; i < len(r.Points); i++ {
		if r.Points[i].Manhattan(r.Points[i-1]) != 1 {
			return false
		}
	}
	return true
}

// PathFunc plans a path between two cells
type PathFunc func(g *Grid, start, goal Point) ([]Point, bool)

// RouteAssembler joins waypoints into a single route
type RouteAssembler struct {
	grid   *Grid
	find   PathFunc
	logger logrus.FieldLogger
}

// NewRouteAssembler creates an assembler using A* on grid
func NewRouteAssembler(grid *Grid, logger logrus.FieldLogger) *RouteAssembler {
	return &RouteAssembler{grid: grid, find: FindPath, logger: logger}
}

// Assemble visits waypoints in (column, row) order. Segments that cannot be
// planned or fail validation are skipped. The result always has at least two points.
func (ra *RouteAssembler) Assemble(waypoints []Waypoint) *Route {
	ordered := append([]Waypoint(nil), waypoints...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Point.Less(ordered[j].Point) })

	route := &Route{Points: make([]Point, 0)}
	for i := 0; i+1 < len(ordered); i++ {
		from, to := ordered[i], ordered[i+1]
		log := ra.logger.WithFields(logrus.Fields{
			"from": fmt.Sprintf("%s %v", from.Name, from.Point),
			"to":   fmt.Sprintf("%s %v", to.Name, to.Point),
		})

		seg, ok := ra.find(ra.grid, from.Point, to.Point)
		if !ok {
			log.Warn("no path between cities, skipping segment")
			route.Skipped = append(route.Skipped, SegmentFailure{From: from, To: to, Err: ErrUnreachable})
			continue
		}
		if err := ValidatePath(ra.grid, seg); err != nil {
			log.WithError(err).Error("planned path failed validation, skipping segment")
			route.Skipped = append(route.Skipped, SegmentFailure{From: from, To: to, Err: err})
			continue
		}

		if len(route.Points) == 0 {
			route.Points = append(route.Points, seg...)
		} else {
			route.Points = append(route.Points, seg[1:]...)
		}
	}

	if len(route.Points) < 2 {
		ra.logger.WithFields(logrus.Fields{
			"waypoints": len(ordered),
			"skipped":   len(route.Skipped),
		}).Info("route too short, using fallback loop")
		route.Points = FallbackLoop(ra.grid.Cols, ra.grid.Rows)
		route.Fallback = true
	}
	return route
}

// maxFallbackMargin caps how far the fallback loop is inset from the edges
const maxFallbackMargin = 3

// FallbackLoop returns a closed clockwise rectangle inset from the grid edges.
// Grids too small to hold a rectangle get the fixed unit loop.
func FallbackLoop(cols, rows int) []Point {
	m := min(cols/5, rows/5, maxFallbackMargin)
	b := Bounds{0, 0, cols - 1, rows - 1}.Inset(m)

	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	}

	loop := make([]Point, 0, 2*(b.Width()+b.Height()))
	for x := b.MinX; x <= b.MaxX; x++ {
		loop = append(loop, Point{x, b.MinY})
	}
	for y := b.MinY + 1; y <= b.MaxY; y++ {
		loop = append(loop, Point{b.MaxX, y})
	}
	for x := b.MaxX - 1; x >= b.MinX; x-- {
		loop = append(loop, Point{x, b.MaxY})
	}
	for y := b.MaxY - 1; y > b.MinY; y-- {
		loop = append(loop, Point{b.MinX, y})
	}
	return append(loop, Point{b.MinX, b.MinY})
}
