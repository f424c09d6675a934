package generation

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrGridTooSmall is returned for grids narrower or shorter than 2 cells
var ErrGridTooSmall = errors.New("grid must be at least 2x2")

// Options configures a generator
type Options struct {
	Cols, Rows int
	Seed       int64
	Names      []string // nil means DefaultCityNames
	Logger     logrus.FieldLogger
}

// World is one complete, immutable generation result
type World struct {
	ID          uuid.UUID
	Seed        int64
	Grid        *Grid
	Waypoints   []Waypoint // placement order
	Cities      map[Point]CityFeature
	Forests     map[Point]ForestFeature
	Route       *Route
	Placement   PlacementReport
	GeneratedAt time.Time
}

// Generator runs the terrain, city, forest and route stages
type Generator struct {
	opts   Options
	vs     ValueSource
	logger logrus.FieldLogger

	grid      *Grid
	waypoints []Waypoint
	cities    map[Point]CityFeature
	forests   map[Point]ForestFeature
	report    PlacementReport
	route     *Route
}

// NewGenerator creates a generator for the given options
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Cols < 2 || opts.Rows < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, opts.Cols, opts.Rows)
	}
	if opts.Names == nil {
		opts.Names = DefaultCityNames
	}
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Generator{
		opts: opts,
		vs:   ValueSource{Seed: opts.Seed},
		logger: logger.WithFields(logrus.Fields{
			"seed": opts.Seed,
			"size": fmt.Sprintf("%dx%d", opts.Cols, opts.Rows),
		}),
	}, nil
}

// Generate produces a new world. It always succeeds; failures inside the
// pipeline degrade to fewer cities or the fallback route.
func (gen *Generator) Generate() *World {
	// 1. Terrain
	gen.grid = Synthesize(gen.opts.Cols, gen.opts.Rows, gen.vs)

	// 2. Cities
	gen.placeCities()

	// 3. Forest decoration
	gen.forests = PlaceForests(gen.grid, gen.vs)

	// 4. Route
	gen.route = NewRouteAssembler(gen.grid, gen.logger).Assemble(gen.waypoints)

	return gen.buildOutput()
}

func (gen *Generator) placeCities() {
	names := NewNamePool(gen.opts.Names, NewRNG(uint64(gen.opts.Seed)))
	placer := NewCityPlacer(gen.grid, gen.vs, names)
	gen.waypoints, gen.cities, gen.report = placer.Place()

	if gen.report.Shortfall() > 0 {
		gen.logger.WithFields(logrus.Fields{
			"target":   gen.report.Target,
			"placed":   gen.report.Placed,
			"attempts": gen.report.Attempts,
		}).Info("placed fewer cities than targeted")
	}
}

func (gen *Generator) buildOutput() *World {
	w := &World{
		ID:          uuid.New(),
		Seed:        gen.opts.Seed,
		Grid:        gen.grid,
		Waypoints:   gen.waypoints,
		Cities:      gen.cities,
		Forests:     gen.forests,
		Route:       gen.route,
		Placement:   gen.report,
		GeneratedAt: time.Now(),
	}
	gen.logger.WithFields(logrus.Fields{
		"cities":   len(w.Waypoints),
		"forests":  len(w.Forests),
		"route":    w.Route.Len(),
		"fallback": w.Route.Fallback,
		"skipped":  len(w.Route.Skipped),
	}).Debug("world generated")
	return w
}

// Generate is a convenience wrapper around NewGenerator and Generate
func Generate(opts Options) (*World, error) {
	gen, err := NewGenerator(opts)
	if err != nil {
		return nil, err
	}
	return gen.Generate(), nil
}
