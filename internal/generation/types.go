package generation

import (
	"fmt"
	"strings"
)

// Point represents a grid coordinate: X is the column, Y is the row
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Adjacent returns the 4 cardinal neighbors
func (p Point) Adjacent() []Point {
	return []Point{
		{p.X, p.Y - 1}, // N
		{p.X, p.Y + 1}, // S
		{p.X - 1, p.Y}, // W
		{p.X + 1, p.Y}, // E
	}
}

// Manhattan returns the 4-connected grid distance between two points
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less orders points by column, then row
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Bounds represents a rectangular region, inclusive on all sides
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Inset returns bounds shrunk by n tiles in each direction
func (b Bounds) Inset(n int) Bounds {
	return Bounds{b.MinX + n, b.MinY + n, b.MaxX - n, b.MaxY - n}
}

// Terrain is the category of a single grid cell
type Terrain uint8

const (
	Grass Terrain = iota
	Water
	Sand
	City
	Mountain
	Forest
)

var terrainNames = [...]string{
	Grass:    "grass",
	Water:    "water",
	Sand:     "sand",
	City:     "city",
	Mountain: "mountain",
	Forest:   "forest",
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", t)
}

// Walkable reports whether a route may pass through this terrain
func (t Terrain) Walkable() bool {
	switch t {
	case Water, Mountain, Forest:
		return false
	}
	return true
}

// MarshalText encodes the terrain by name
func (t Terrain) MarshalText() ([]byte, error) {
	if int(t) >= len(terrainNames) {
		return nil, fmt.Errorf("unknown terrain %d", t)
	}
	return []byte(terrainNames[t]), nil
}

// UnmarshalText decodes a terrain name
func (t *Terrain) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range terrainNames {
		if n == name {
			*t = Terrain(i)
			return nil
		}
	}
	return fmt.Errorf("unknown terrain %q", name)
}

// Grid is a rows x cols terrain map indexed as Cells[row][col]
type Grid struct {
	Cols, Rows int
	Cells      [][]Terrain
}

// NewGrid creates a new grid filled with a default terrain
func NewGrid(cols, rows int, fill Terrain) *Grid {
	cells := make([][]Terrain, rows)
	for y := 0; y < rows; y++ {
		cells[y] = make([]Terrain, cols)
		for x := 0; x < cols; x++ {
			cells[y][x] = fill
		}
	}
	return &Grid{Cols: cols, Rows: rows, Cells: cells}
}

// ParseGrid builds a grid from rows of single-letter terrain codes:
// g grass, w water, s sand, c city, m mountain, f forest.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	cols := len(rows[0])
	g := NewGrid(cols, len(rows), Grass)
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), cols)
		}
		for x, ch := range row {
			t, ok := terrainCodes[ch]
			if !ok {
				return nil, fmt.Errorf("unknown terrain code %q at %d,%d", ch, x, y)
			}
			g.Cells[y][x] = t
		}
	}
	return g, nil
}

var terrainCodes = map[rune]Terrain{
	'g': Grass,
	'w': Water,
	's': Sand,
	'c': City,
	'm': Mountain,
	'f': Forest,
}

// Codes returns the grid as rows of terrain codes, the inverse of ParseGrid
func (g *Grid) Codes() []string {
	letters := make(map[Terrain]byte, len(terrainCodes))
	for ch, t := range terrainCodes {
		letters[t] = byte(ch)
	}
	rows := make([]string, g.Rows)
	for y, row := range g.Cells {
		b := make([]byte, len(row))
		for x, t := range row {
			b[x] = letters[t]
		}
		rows[y] = string(b)
	}
	return rows
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Cols && p.Y >= 0 && p.Y < g.Rows
}

// Set sets the terrain at a position
func (g *Grid) Set(p Point, t Terrain) {
	if g.InBounds(p) {
		g.Cells[p.Y][p.X] = t
	}
}

// At returns the terrain at a position and whether it is in bounds
func (g *Grid) At(p Point) (Terrain, bool) {
	if g.InBounds(p) {
		return g.Cells[p.Y][p.X], true
	}
	return Water, false
}

// IsWalkable checks if a position is in bounds and walkable
func (g *Grid) IsWalkable(p Point) bool {
	t, ok := g.At(p)
	return ok && t.Walkable()
}

// Count returns how many cells hold the given terrain
func (g *Grid) Count(t Terrain) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == t {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{Cols: g.Cols, Rows: g.Rows, Cells: make([][]Terrain, g.Rows)}
	for y := range g.Cells {
		c.Cells[y] = append([]Terrain(nil), g.Cells[y]...)
	}
	return c
}

// Equal reports whether two grids hold identical terrain
func (g *Grid) Equal(o *Grid) bool {
	if g.Cols != o.Cols || g.Rows != o.Rows {
		return false
	}
	for y := range g.Cells {
		for x := range g.Cells[y] {
			if g.Cells[y][x] != o.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Building is one box in a city's visual layout, in screen-space units
// relative to the tile center.
type Building struct {
	OffsetX   float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY   float64 `json:"offset_y" yaml:"offset_y"`
	HalfWidth float64 `json:"half_width" yaml:"half_width"`
	HalfDepth float64 `json:"half_depth" yaml:"half_depth"`
	Height    float64 `json:"height" yaml:"height"`
	Wall      string  `json:"wall" yaml:"wall"`
	Roof      string  `json:"roof" yaml:"roof"`
}

// CityFeature is the decoration attached to a city cell
type CityFeature struct {
	Name      string     `json:"name" yaml:"name"`
	Buildings []Building `json:"buildings" yaml:"buildings"` // back-to-front
}

// Tree is one tree in a forest cell
type Tree struct {
	DX    float64 `json:"dx" yaml:"dx"`
	DY    float64 `json:"dy" yaml:"dy"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// ForestFeature is the decoration attached to a forest cell
type ForestFeature struct {
	Trees []Tree `json:"trees" yaml:"trees"`
}

// Waypoint is a placed city the route must visit
type Waypoint struct {
	Point
	Name string
}

// Tile sizes in screen units, used for building and tree jitter
const (
	TileWidthHalf  = 32.0
	TileHeightHalf = 16.0
)
