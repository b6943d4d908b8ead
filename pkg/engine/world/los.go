package world

// HasLineOfSight returns true if there's a clear path between two tiles on the
// ground-truth grid. Uses Bresenham's line algorithm; any wall strictly between
// the endpoints blocks, the destination itself never does.
func HasLineOfSight(m *MapState, from, to Position) bool {
	return HasLineOfSightOn(m, from, to, false)
}

// HasLineOfSightOn is HasLineOfSight over the selected grid. On the known grid
// unknown cells do not block.
func HasLineOfSightOn(m *MapState, from, to Position, useKnown bool) bool {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if dx == 0 && dy == 0 {
		return true
	}
	if m == nil {
		return false
	}

	absDx := abs(dx)
	absDy := abs(dy)
	stepX := sign(dx)
	stepY := sign(dy)

	x, y := from.X, from.Y

	if absDx >= absDy {
		// Step along columns
		err := 2*absDy - absDx
		for {
			x += stepX
			if err > 0 {
				y += stepY
				err -= 2 * absDx
			}
			err += 2 * absDy

			if x == to.X {
				return true
			}
			if blocksLine(m, x, y, useKnown) {
				return false
			}
		}
	}

	// Step along rows
	err := 2*absDx - absDy
	for {
		y += stepY
		if err > 0 {
			x += stepX
			err -= 2 * absDy
		}
		err += 2 * absDx

		if y == to.Y {
			return true
		}
		if blocksLine(m, x, y, useKnown) {
			return false
		}
	}
}

// blocksLine treats off-grid intermediate cells as blocked: a line that leaves
// the map cannot come back into view.
func blocksLine(m *MapState, x, y int, useKnown bool) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.IsWall(x, y, useKnown)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
