package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position is an integer tile coordinate.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Key returns the canonical "x,y" key for the position.
func (p Position) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// String implements fmt.Stringer
func (p Position) String() string {
	return p.Key()
}

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(float64(o.X-p.X), float64(o.Y-p.Y))
}

// ParseKey parses an "x,y" key back into a Position.
func ParseKey(key string) (Position, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Position{}, fmt.Errorf("parse position key %q: missing comma", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Position{}, fmt.Errorf("parse position key %q: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Position{}, fmt.Errorf("parse position key %q: %w", key, err)
	}
	return Position{X: x, Y: y}, nil
}
