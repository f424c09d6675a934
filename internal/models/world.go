package models

import "time"

// Position represents a cell on the map; X is the column, Y the row
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldResponse is the full snapshot sent to a renderer
type WorldResponse struct {
	ID             string        `json:"id" yaml:"id"`
	Seed           int64         `json:"seed" yaml:"seed"`
	Cols           int           `json:"cols" yaml:"cols"`
	Rows           int           `json:"rows" yaml:"rows"`
	TileWidthHalf  float64       `json:"tile_width_half" yaml:"tile_width_half"`
	TileHeightHalf float64       `json:"tile_height_half" yaml:"tile_height_half"`
	Tiles          [][]string    `json:"tiles" yaml:"tiles"` // [row][col] terrain names
	Waypoints      []Waypoint    `json:"waypoints" yaml:"waypoints"`
	Cities         []City        `json:"cities" yaml:"cities"`
	Forests        []Forest      `json:"forests" yaml:"forests"`
	Route          RouteResponse `json:"route" yaml:"route"`
	Placement      Placement     `json:"placement" yaml:"placement"`
	GeneratedAt    time.Time     `json:"generated_at" yaml:"generated_at"`
}

// Waypoint is a named city the route visits
type Waypoint struct {
	Position `yaml:",inline"`
	Name     string `json:"name" yaml:"name"`
}

// Building is one block of a city, in pixels relative to the tile centre
type Building struct {
	OffsetX   float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY   float64 `json:"offset_y" yaml:"offset_y"`
	HalfWidth float64 `json:"half_width" yaml:"half_width"`
	HalfDepth float64 `json:"half_depth" yaml:"half_depth"`
	Height    float64 `json:"height" yaml:"height"`
	Wall      string  `json:"wall" yaml:"wall"`
	Roof      string  `json:"roof" yaml:"roof"`
}

// City is the decoration for one city cell, buildings in draw order
type City struct {
	Position  `yaml:",inline"`
	Name      string     `json:"name" yaml:"name"`
	Buildings []Building `json:"buildings" yaml:"buildings"`
}

// Tree is one tree of a forest cell
type Tree struct {
	DX    float64 `json:"dx" yaml:"dx"`
	DY    float64 `json:"dy" yaml:"dy"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// Forest is the decoration for one forest cell, trees in draw order
type Forest struct {
	Position `yaml:",inline"`
	Trees    []Tree `json:"trees" yaml:"trees"`
}

// RouteResponse is the track the train follows
type RouteResponse struct {
	Points   []Position       `json:"points" yaml:"points"`
	Fallback bool             `json:"fallback" yaml:"fallback"`
	Skipped  []SkippedSegment `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// SkippedSegment is a pair of consecutive cities the route could not join
type SkippedSegment struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Reason string `json:"reason" yaml:"reason"`
}

// Placement summarises city placement
type Placement struct {
	Target   int `json:"target" yaml:"target"`
	Placed   int `json:"placed" yaml:"placed"`
	Attempts int `json:"attempts" yaml:"attempts"`
}
