// Package vision extends an observer's field of view with the tiles lit by
// remote light sources the observer can see.
package vision

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
	"darklight/pkg/logger"
)

// ErrNoMapState is returned when vision is requested without a map.
var ErrNoMapState = errors.New("vision requires a map state")

// Params are the inputs of one vision update.
type Params struct {
	Origin     world.Position
	BaseRadius int
	Map        *world.MapState
	Lights     []lighting.LightSource

	// LightsAlreadyFiltered skips the line-of-sight check from Origin to
	// each light; the caller has done it.
	LightsAlreadyFiltered bool

	// UseKnownGrid makes the observer's own sight lines use the known grid.
	// Light propagation always uses the ground truth.
	UseKnownGrid bool
}

// Result is the observer's effective sight for one tick.
type Result struct {
	// Visible is BaseVisible plus every lit tile inside PlayerLOS.
	Visible world.VisibilitySet
	// BaseVisible is the plain field of view at BaseRadius.
	BaseVisible world.VisibilitySet
	// ExtraLit is what the lights added beyond BaseVisible.
	ExtraLit world.VisibilitySet
	// PlayerLOS is the field of view expanded to the farthest useful light.
	PlayerLOS world.VisibilitySet

	// LightSignature changes whenever the set of seen lights changes, and
	// does not depend on their order.
	LightSignature string

	// Lights are the lights that passed the line-of-sight filter.
	Lights []lighting.LightSource
}

// ComputeVisionWithLights computes what an observer sees once lights it has
// line of sight to are taken into account. A lit tile only becomes visible
// if it is also inside the observer's expanded field of view, so light from
// an occluded source never reveals anything.
func ComputeVisionWithLights(p Params) (Result, error) {
	if p.Map == nil {
		return Result{}, fmt.Errorf("compute vision at %s: %w", p.Origin, ErrNoMapState)
	}

	opts := world.FOVOptions{UseKnownGrid: p.UseKnownGrid}
	base := world.ComputeFieldOfView(p.Origin, p.BaseRadius, p.Map, opts)

	lights := p.Lights
	if !p.LightsAlreadyFiltered {
		lights = FilterVisibleLights(p.Map, p.Origin, p.Lights, p.UseKnownGrid)
	}

	lit := world.NewVisibilitySet()
	maxReach := float64(p.BaseRadius)
	for _, l := range lights {
		if !(l.Radius > 0) || math.IsInf(l.Radius, 0) {
			continue
		}
		world.UnionInto(lit, world.ComputeFieldOfView(l.Position(), int(math.Ceil(l.Radius)), p.Map, world.FOVOptions{}))
		maxReach = math.Max(maxReach, p.Origin.DistanceTo(l.Position())+l.Radius)
	}

	res := Result{
		BaseVisible:    base,
		LightSignature: LightSignature(lights),
		Lights:         lights,
	}

	if lit.Size() == 0 {
		res.Visible = base
		res.PlayerLOS = base
		res.ExtraLit = world.NewVisibilitySet()
		return res, nil
	}

	los := base
	if maxReach > float64(p.BaseRadius) {
		los = world.ComputeFieldOfView(p.Origin, int(math.Ceil(maxReach)), p.Map, opts)
	}
	seenLit := world.Intersect(los, lit)

	res.PlayerLOS = los
	res.Visible = world.Union(base, seenLit)
	res.ExtraLit = world.Difference(seenLit, base)

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.For("vision").WithFields(logrus.Fields{
			"origin":    p.Origin.Key(),
			"lights":    len(lights),
			"max_reach": maxReach,
			"extra_lit": res.ExtraLit.Size(),
		}).Debug("Vision extended by lights.")
	}

	return res, nil
}

// FilterVisibleLights returns the lights with an unobstructed line of sight
// from origin.
func FilterVisibleLights(m *world.MapState, origin world.Position, lights []lighting.LightSource, useKnown bool) []lighting.LightSource {
	out := make([]lighting.LightSource, 0, len(lights))
	for _, l := range lights {
		if world.HasLineOfSightOn(m, origin, l.Position(), useKnown) {
			out = append(out, l)
		}
	}
	return out
}

// LightSignature formats each light as "id:x,y,r" with r the radius in
// hundredths, sorts the entries and joins them with "|".
func LightSignature(lights []lighting.LightSource) string {
	parts := make([]string, 0, len(lights))
	for _, l := range lights {
		parts = append(parts, fmt.Sprintf("%s:%d,%d,%d", l.ID, l.X, l.Y, int64(math.Round(l.Radius*100))))
	}
	slices.Sort(parts)
	return strings.Join(parts, "|")
}
