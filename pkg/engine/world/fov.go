package world

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/stack"

	"darklight/pkg/logger"
)

// FOVOptions selects the grid that blocks sight.
type FOVOptions struct {
	// UseKnownGrid casts over the fog-of-war memory instead of the ground
	// truth. Unknown cells never occlude.
	UseKnownGrid bool
}

// octantScan is one pending row sweep: rows from Row outward within the slope
// interval [End, Start] of an octant.
type octantScan struct {
	Octant Octant
	Row    int
	Start  float64
	End    float64
}

// ComputeFieldOfView returns the tiles visible from origin within radius using
// symmetric shadow-casting over the 8 octants. A tile is in range when
// dx²+dy² ≤ radius². The origin is always in the result, even at radius 0.
// Off-grid tiles are never inserted.
func ComputeFieldOfView(origin Position, radius int, m *MapState, opts FOVOptions) VisibilitySet {
	visible := NewVisibilitySet(origin)
	if m == nil || radius <= 0 {
		return visible
	}

	// Child scans go on a worklist instead of the call stack so very large
	// radii cannot exhaust it. Scans are independent, so order does not matter.
	work := stack.New[octantScan]()
	for _, oct := range AllOctants() {
		work.Push(octantScan{Octant: oct, Row: 1, Start: 1.0, End: 0.0})
	}
	for work.Size() > 0 {
		castOctant(m, origin, radius, work.Pop(), opts.UseKnownGrid, visible, work)
	}

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.For("fov").WithFields(logrus.Fields{
			"origin":        origin.Key(),
			"radius":        radius,
			"known_grid":    opts.UseKnownGrid,
			"visible_tiles": visible.Size(),
		}).Debug("FOV calculation complete.")
	}

	return visible
}

func castOctant(m *MapState, origin Position, radius int, scan octantScan, useKnown bool, visible VisibilitySet, work *stack.Stack[octantScan]) {
	start := scan.Start
	if start < scan.End {
		return
	}

	radiusSq := radius * radius

	for j := scan.Row; j <= radius; j++ {
		dy := -j
		blocked := false
		newStart := start

		for dx := -j; dx <= 0; dx++ {
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if scan.End > lSlope {
				break
			}

			p := scan.Octant.Transform(origin, dx, dy)
			if dx*dx+dy*dy <= radiusSq && m.InBounds(p.X, p.Y) {
				visible.Put(p)
			}

			wall := m.IsWall(p.X, p.Y, useKnown)
			if blocked {
				if wall {
					// still inside a wall run
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if wall && j < radius {
				blocked = true
				work.Push(octantScan{Octant: scan.Octant, Row: j + 1, Start: start, End: lSlope})
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
