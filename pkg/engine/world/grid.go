// Package world provides generic 2D tile-grid primitives: map state, positions,
// line of sight and field of view. These are engine-level constructs usable by
// any tile-based game.
package world

import (
	"errors"
	"fmt"
)

// Tile is a single tile code in a grid.
type Tile int

// Tile codes. TileUnknown only appears in the known (fog-of-war) grid.
const (
	TileUnknown Tile = -1
	TileFloor   Tile = 0
	TileWall    Tile = 1
)

// ErrInvalidDimensions is returned when a map is built with a non-positive size.
var ErrInvalidDimensions = errors.New("map dimensions must be positive")

// Fixture is a static object placed on the map (a piece of furniture or a map
// feature). Position may be fractional; consumers resolve it to a tile.
type Fixture interface {
	FixturePosition() (x, y float64)
}

// MapState is the tile grid an observer looks at. Grid is row-major
// (Grid[y][x]). Known is the optional fog-of-war memory owned by the
// exploration tracker; it uses TileUnknown for cells never observed.
type MapState struct {
	Width  int
	Height int
	Grid   [][]Tile
	Known  [][]Tile

	Furniture []Fixture
	Features  []Fixture
}

// NewMapState creates an all-floor map of the given size with no known grid.
func NewMapState(width, height int) (*MapState, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new map %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	m := &MapState{Width: width, Height: height}
	m.Grid = make([][]Tile, height)
	for y := range m.Grid {
		m.Grid[y] = make([]Tile, width)
	}
	return m, nil
}

// InitKnown allocates a known grid filled with TileUnknown, replacing any
// existing one.
func (m *MapState) InitKnown() {
	m.Known = make([][]Tile, m.Height)
	for y := range m.Known {
		row := make([]Tile, m.Width)
		for x := range row {
			row[x] = TileUnknown
		}
		m.Known[y] = row
	}
}

// InBounds checks if a position is within the map
func (m *MapState) InBounds(x, y int) bool {
	return m != nil && x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// TileAt returns the ground-truth tile, or TileFloor when out of bounds or the
// row is short.
func (m *MapState) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) || y >= len(m.Grid) || x >= len(m.Grid[y]) {
		return TileFloor
	}
	return m.Grid[y][x]
}

// KnownAt returns the remembered tile, or TileUnknown when there is no memory
// for that cell.
func (m *MapState) KnownAt(x, y int) Tile {
	if !m.InBounds(x, y) || y >= len(m.Known) || x >= len(m.Known[y]) {
		return TileUnknown
	}
	return m.Known[y][x]
}

// SetTile sets a ground-truth tile. Returns false if out of bounds.
func (m *MapState) SetTile(x, y int, t Tile) bool {
	if !m.InBounds(x, y) || y >= len(m.Grid) || x >= len(m.Grid[y]) {
		return false
	}
	m.Grid[y][x] = t
	return true
}

// SetKnown records a remembered tile, allocating the known grid on first use.
// Returns false if out of bounds.
func (m *MapState) SetKnown(x, y int, t Tile) bool {
	if !m.InBounds(x, y) {
		return false
	}
	if m.Known == nil {
		m.InitKnown()
	}
	m.Known[y][x] = t
	return true
}

// IsWall reports whether the tile blocks sight on the selected grid. On the
// known grid only a remembered wall blocks; unknown cells are transparent.
// Off-grid cells never block.
func (m *MapState) IsWall(x, y int, useKnown bool) bool {
	if !m.InBounds(x, y) {
		return false
	}
	if useKnown {
		return m.KnownAt(x, y) == TileWall
	}
	return m.TileAt(x, y) == TileWall
}

// Reveal copies the ground truth of every position in the set into the known
// grid. This is what an exploration tracker does with a fresh visible set.
func (m *MapState) Reveal(visible VisibilitySet) {
	visible.Each(func(p Position) {
		m.SetKnown(p.X, p.Y, m.TileAt(p.X, p.Y))
	})
}

// ForEachTile iterates over all tiles in the grid, calling the provided function for each
func (m *MapState) ForEachTile(fn func(x, y int, t Tile)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fn(x, y, m.TileAt(x, y))
		}
	}
}

// Validate checks the map for common issues and returns an error description or empty string if valid
func (m *MapState) Validate() string {
	if m.Width <= 0 || m.Height <= 0 {
		return "Map has invalid dimensions"
	}
	if len(m.Grid) != m.Height {
		return "Map grid row count does not match height"
	}
	for _, row := range m.Grid {
		if len(row) != m.Width {
			return "Map grid row length does not match width"
		}
	}
	if m.Known != nil && len(m.Known) != m.Height {
		return "Known grid row count does not match height"
	}
	return ""
}
