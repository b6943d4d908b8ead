package world

// Octant identifies one of the eight symmetric sectors around an origin used by
// shadow-casting. Each octant maps a sweep offset (dx, dy) to a world offset.
type Octant int

// Octant constants, named by the compass sector they cover
const (
	OctantNNW Octant = iota
	OctantWNW
	OctantENE
	OctantNNE
	OctantSSE
	OctantESE
	OctantWSW
	OctantSSW
)

// octantMultipliers holds xx, xy, yx, yy for each octant.
var octantMultipliers = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// AllOctants returns all octants for iteration
func AllOctants() []Octant {
	return []Octant{OctantNNW, OctantWNW, OctantENE, OctantNNE, OctantSSE, OctantESE, OctantWSW, OctantSSW}
}

// String returns the string representation of an octant
func (o Octant) String() string {
	switch o {
	case OctantNNW:
		return "NNW"
	case OctantWNW:
		return "WNW"
	case OctantENE:
		return "ENE"
	case OctantNNE:
		return "NNE"
	case OctantSSE:
		return "SSE"
	case OctantESE:
		return "ESE"
	case OctantWSW:
		return "WSW"
	case OctantSSW:
		return "SSW"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the octant is one of the eight sectors
func (o Octant) IsValid() bool {
	return o >= OctantNNW && o <= OctantSSW
}

// Transform maps a sweep offset within this octant to a world position
// relative to origin.
func (o Octant) Transform(origin Position, dx, dy int) Position {
	if !o.IsValid() {
		return origin
	}
	m := octantMultipliers[o]
	return Position{
		X: origin.X + dx*m[0] + dy*m[1],
		Y: origin.Y + dx*m[2] + dy*m[3],
	}
}
