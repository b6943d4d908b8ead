// Package lighting gathers light emitters from the world into normalized light
// records and composites them into per-tile overlay samples.
package lighting

import (
	"math"

	"darklight/pkg/engine/world"
)

// Channel is a bitmask partitioning light into independent layers, so that
// some observers see lights others cannot.
type Channel uint32

// Channel constants
const (
	ChannelNormal Channel = 1 << iota
	ChannelSpectral
	ChannelInfrared

	ChannelNone Channel = 0
	ChannelAll  Channel = ^Channel(0)
)

// Intersects reports whether the two masks share any bit.
func (c Channel) Intersects(o Channel) bool {
	return c&o != 0
}

// OrAll returns the mask, or ChannelAll when it is unset.
func (c Channel) OrAll() Channel {
	if c == ChannelNone {
		return ChannelAll
	}
	return c
}

// SourceKind tags where a light record came from.
type SourceKind string

// Source kinds
const (
	SourceActor     SourceKind = "actor"
	SourceItem      SourceKind = "item"
	SourceFurniture SourceKind = "furniture"
	SourceFeature   SourceKind = "feature"
)

// Cone restricts a light to a directional wedge. Angle is the bearing of the
// wedge's axis and Width its full opening, both in radians, measured in grid
// space (0 points to +x, π/2 to +y).
type Cone struct {
	Angle float64
	Width float64
}

// valid reports whether the cone actually restricts anything.
func (c *Cone) valid() bool {
	return c != nil && isFinite(c.Angle) && isFinite(c.Width) && c.Width >= 0 && c.Width < 2*math.Pi
}

// Contains reports whether a bearing lies within the wedge.
func (c *Cone) Contains(bearing float64) bool {
	if !c.valid() {
		return true
	}
	return math.Abs(normalizeAngle(bearing-c.Angle)) <= c.Width/2
}

// LightSource is one normalized light record. Records are rebuilt every tick
// and their IDs are only unique within one collection pass.
type LightSource struct {
	ID      string
	Kind    SourceKind
	OwnerID string

	X int
	Y int

	Radius      float64
	Color       RGB
	Intensity   float64
	FlickerRate float64
	Cone        *Cone
	Channel     Channel
}

// Position returns the tile the light sits on.
func (l *LightSource) Position() world.Position {
	return world.Pos(l.X, l.Y)
}

// IsDirectional returns true if the light only shines into a cone.
func (l *LightSource) IsDirectional() bool {
	return l.Cone.valid()
}

// normalizeAngle maps an angle into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}
