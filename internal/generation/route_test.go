package generation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestValidatePath(t *testing.T) {
	g := mustParseGrid(t,
		"gscg",
		"gwmf",
	)

	tests := []struct {
		name    string
		path    []Point
		wantErr error
	}{
		{"nil path", nil, nil},
		{"empty path", []Point{}, nil},
		{"grass sand city", []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, nil},
		{"out of bounds", []Point{{0, 0}, {4, 0}}, ErrOutOfBounds},
		{"negative", []Point{{-1, 0}}, ErrOutOfBounds},
		{"water", []Point{{0, 0}, {0, 1}, {1, 1}}, ErrNotWalkable},
		{"mountain", []Point{{2, 1}}, ErrNotWalkable},
		{"forest", []Point{{3, 0}, {3, 1}}, ErrNotWalkable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePath(g, tc.path)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidatePath = %v, want %v", err, tc.wantErr)
			}
			if IsValid(g, tc.path) != (tc.wantErr == nil) {
				t.Errorf("IsValid disagrees with ValidatePath")
			}
		})
	}
}

func TestValidatePathReportsFirstBadPoint(t *testing.T) {
	g := mustParseGrid(t, "gwm")
	err := ValidatePath(g, []Point{{0, 0}, {1, 0}, {2, 0}})
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PathError", err)
	}
	if pe.Point != (Point{1, 0}) || pe.Terrain != Water {
		t.Errorf("PathError = %+v, want water at (1,0)", pe)
	}
}

func TestFallbackLoop(t *testing.T) {
	tests := []struct {
		cols, rows int
		want       []Point
	}{
		{2, 2, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{3, 3, []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {0, 0}}},
		{2, 7, []Point{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {0, 6}, {0, 5}, {0, 4}, {0, 3}, {0, 2}, {0, 1}, {0, 0}}},
		{10, 10, []Point{{2, 2}, {3, 2}, {4, 2}, {5, 2}, {6, 2}, {7, 2}, {7, 3}, {7, 4}, {7, 5}, {7, 6}, {7, 7}, {6, 7}, {5, 7}, {4, 7}, {3, 7}, {2, 7}, {2, 6}, {2, 5}, {2, 4}, {2, 3}, {2, 2}}},
	}
	for _, tc := range tests {
		got := FallbackLoop(tc.cols, tc.rows)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FallbackLoop(%d, %d) = %v, want %v", tc.cols, tc.rows, got, tc.want)
		}
	}
}

func TestFallbackLoopShape(t *testing.T) {
	for cols := 2; cols <= 40; cols += 3 {
		for rows := 2; rows <= 40; rows += 5 {
			loop := FallbackLoop(cols, rows)
			r := &Route{Points: loop}
			if r.Len() < 2 {
				t.Fatalf("%dx%d: loop has %d points", cols, rows, r.Len())
			}
			if !r.Continuous() {
				t.Fatalf("%dx%d: loop is not continuous: %v", cols, rows, loop)
			}
			if loop[0] != loop[len(loop)-1] {
				t.Fatalf("%dx%d: loop does not close", cols, rows)
			}
			g := NewGrid(cols, rows, Grass)
			if err := ValidatePath(g, loop); err != nil {
				t.Fatalf("%dx%d: %v", cols, rows, err)
			}
		}
	}
	// Margin is capped at 3
	if got := FallbackLoop(50, 50)[0]; got != (Point{3, 3}) {
		t.Errorf("50x50 loop starts at %v, want (3,3)", got)
	}
}

func newTestAssembler(g *Grid) (*RouteAssembler, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewRouteAssembler(g, logger), hook
}

func TestAssembleNoWaypoints(t *testing.T) {
	for _, size := range [][2]int{{2, 2}, {3, 3}, {25, 25}} {
		g := NewGrid(size[0], size[1], Water)
		ra, hook := newTestAssembler(g)
		for _, wps := range [][]Waypoint{nil, {{Point: Point{1, 1}, Name: "Lonely"}}} {
			hook.Reset()
			r := ra.Assemble(wps)
			if !r.Fallback {
				t.Errorf("%v: expected fallback route", size)
			}
			if r.Len() < 2 {
				t.Errorf("%v: route has %d points", size, r.Len())
			}
			if e := hook.LastEntry(); e == nil || e.Level != logrus.InfoLevel {
				t.Errorf("%v: fallback not logged at info", size)
			}
		}
	}
}

func TestAssembleJoinsSegments(t *testing.T) {
	g := mustParseGrid(t,
		"gggggggggg",
		"gcgggggggg",
		"gggggmmggg",
		"ggggggmgcg",
		"gggcgggggg",
		"gggggggggg",
	)
	waypoints := []Waypoint{
		{Point{8, 3}, "East"},
		{Point{1, 1}, "West"},
		{Point{3, 4}, "Middle"},
	}
	ra, hook := newTestAssembler(g)
	r := ra.Assemble(waypoints)

	if r.Fallback || len(r.Skipped) != 0 {
		t.Fatalf("fallback=%v skipped=%v", r.Fallback, r.Skipped)
	}
	if !r.Continuous() {
		t.Fatalf("route is not continuous: %v", r.Points)
	}
	if err := ValidatePath(g, r.Points); err != nil {
		t.Fatal(err)
	}
	if r.Points[0] != (Point{1, 1}) || r.Points[r.Len()-1] != (Point{8, 3}) {
		t.Errorf("route runs %v -> %v, want (1,1) -> (8,3)", r.Points[0], r.Points[r.Len()-1])
	}
	// Visits the middle city exactly once, with no duplicated joint
	count := 0
	for i, p := range r.Points {
		if p == (Point{3, 4}) {
			count++
		}
		if i > 0 && r.Points[i-1] == p {
			t.Errorf("duplicate point %v at %d", p, i)
		}
	}
	if count != 1 {
		t.Errorf("middle city visited %d times", count)
	}
	// West -> Middle is 5 steps ending in a city; Middle -> East is 6 ending in a city
	wantLen := 1 + 5 + 6
	if r.Len() != wantLen {
		t.Errorf("route length %d, want %d", r.Len(), wantLen)
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.WarnLevel {
			t.Errorf("unexpected %s log: %s", e.Level, e.Message)
		}
	}
}

func TestAssembleSkipsUnreachable(t *testing.T) {
	g := mustParseGrid(t,
		"gggwggggg",
		"gcgwgcgcg",
		"gggwggggg",
	)
	waypoints := []Waypoint{
		{Point{1, 1}, "A"},
		{Point{5, 1}, "B"},
		{Point{7, 1}, "C"},
	}
	ra, hook := newTestAssembler(g)
	r := ra.Assemble(waypoints)

	if r.Fallback {
		t.Fatal("unexpected fallback; B -> C should have routed")
	}
	if len(r.Skipped) != 1 {
		t.Fatalf("skipped %d segments, want 1", len(r.Skipped))
	}
	s := r.Skipped[0]
	if s.From.Name != "A" || s.To.Name != "B" || !errors.Is(s.Err, ErrUnreachable) {
		t.Errorf("skipped %+v, want A -> B unreachable", s)
	}
	if r.Points[0] != (Point{5, 1}) || r.Points[r.Len()-1] != (Point{7, 1}) {
		t.Errorf("route runs %v -> %v, want B -> C", r.Points[0], r.Points[r.Len()-1])
	}

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Error("unreachable segment was not logged at warn")
	}
}

func TestAssembleRejectsInvalidSegments(t *testing.T) {
	g := mustParseGrid(t,
		"gcgwgcg",
	)
	ra, hook := newTestAssembler(g)
	// A broken planner that walks straight through the water
	ra.find = func(_ *Grid, start, goal Point) ([]Point, bool) {
		var path []Point
		for x := start.X; x <= goal.X; x++ {
			path = append(path, Point{x, start.Y})
		}
		return path, true
	}

	r := ra.Assemble([]Waypoint{{Point{1, 0}, "A"}, {Point{5, 0}, "B"}})
	if !r.Fallback {
		t.Error("expected fallback after the only segment failed validation")
	}
	if len(r.Skipped) != 1 || !errors.Is(r.Skipped[0].Err, ErrNotWalkable) {
		t.Fatalf("skipped = %+v, want one not-walkable failure", r.Skipped)
	}

	var sawError bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			sawError = true
		}
	}
	if !sawError {
		t.Error("validation failure was not logged at error")
	}
}

func TestAssembleOrderIsByCoordinate(t *testing.T) {
	g := NewGrid(6, 6, Grass)
	wps := []Waypoint{
		{Point{4, 4}, "D"},
		{Point{1, 3}, "B"},
		{Point{1, 1}, "A"},
		{Point{3, 0}, "C"},
	}
	for _, wp := range wps {
		g.Set(wp.Point, City)
	}
	ra, _ := newTestAssembler(g)
	r := ra.Assemble(wps)

	order := []Point{{1, 1}, {1, 3}, {3, 0}, {4, 4}}
	next := 0
	for _, p := range r.Points {
		if next < len(order) && p == order[next] {
			next++
		}
	}
	if next != len(order) {
		t.Errorf("route visits only %d of %d cities in column/row order", next, len(order))
	}
	if !reflect.DeepEqual(wps[0].Point, Point{4, 4}) {
		t.Error("Assemble reordered the caller's slice")
	}
}
