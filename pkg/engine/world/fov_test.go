package world

import (
	"testing"
)

// openMap creates an all-floor map for FOV tests.
func openMap(t *testing.T, width, height int) *MapState {
	t.Helper()
	m, err := NewMapState(width, height)
	if err != nil {
		t.Fatalf("NewMapState(%d, %d) error = %v", width, height, err)
	}
	return m
}

func TestComputeFieldOfView_OriginAlwaysVisible(t *testing.T) {
	m := openMap(t, 10, 10)
	for _, radius := range []int{-3, 0, 1, 5} {
		got := ComputeFieldOfView(Pos(4, 4), radius, m, FOVOptions{})
		if !got.Has(Pos(4, 4)) {
			t.Errorf("ComputeFieldOfView(radius=%d) missing origin", radius)
		}
	}
}

func TestComputeFieldOfView_RadiusZeroIsOriginOnly(t *testing.T) {
	m := openMap(t, 10, 10)
	got := ComputeFieldOfView(Pos(4, 4), 0, m, FOVOptions{})
	if got.Size() != 1 {
		t.Errorf("radius 0: len = %d, want 1 (%v)", got.Size(), Keys(got))
	}
}

func TestComputeFieldOfView_NilMapIsOriginOnly(t *testing.T) {
	got := ComputeFieldOfView(Pos(2, 3), 6, nil, FOVOptions{})
	if got.Size() != 1 || !got.Has(Pos(2, 3)) {
		t.Errorf("nil map: got %v, want [2,3]", Keys(got))
	}
}

func TestComputeFieldOfView_EmptyGridMatchesCircle(t *testing.T) {
	const size = 25
	m := openMap(t, size, size)

	cases := []struct {
		origin Position
		radius int
	}{
		{Pos(12, 12), 1},
		{Pos(12, 12), 3},
		{Pos(12, 12), 7},
		{Pos(0, 0), 5},
		{Pos(24, 3), 6},
		{Pos(5, 20), 10},
	}
	for _, tc := range cases {
		t.Run(tc.origin.Key(), func(t *testing.T) {
			got := ComputeFieldOfView(tc.origin, tc.radius, m, FOVOptions{})
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					dx, dy := x-tc.origin.X, y-tc.origin.Y
					want := dx*dx+dy*dy <= tc.radius*tc.radius
					if got.Has(Pos(x, y)) != want {
						t.Fatalf("radius %d: visible(%d,%d) = %v, want %v", tc.radius, x, y, !want, want)
					}
				}
			}
		})
	}
}

func TestComputeFieldOfView_OffGridNeverInserted(t *testing.T) {
	m := openMap(t, 4, 4)
	got := ComputeFieldOfView(Pos(0, 0), 6, m, FOVOptions{})
	got.Each(func(p Position) {
		if !m.InBounds(p.X, p.Y) {
			t.Errorf("off-grid position %v in visible set", p)
		}
	})
}

func TestComputeFieldOfView_WallHidesTilesBehindIt(t *testing.T) {
	m := openMap(t, 11, 11)
	m.SetTile(5, 3, TileWall)

	got := ComputeFieldOfView(Pos(5, 5), 5, m, FOVOptions{})

	if !got.Has(Pos(5, 3)) {
		t.Error("wall tile itself should be visible")
	}
	for _, y := range []int{2, 1, 0} {
		if got.Has(Pos(5, y)) {
			t.Errorf("tile (5,%d) behind wall should be hidden", y)
		}
	}
	if !got.Has(Pos(5, 4)) {
		t.Error("tile between origin and wall should be visible")
	}
}

func TestComputeFieldOfView_WallOnEveryAxis(t *testing.T) {
	walls := []struct {
		name   string
		wall   Position
		hidden Position
	}{
		{"North", Pos(6, 4), Pos(6, 2)},
		{"South", Pos(6, 8), Pos(6, 10)},
		{"East", Pos(8, 6), Pos(10, 6)},
		{"West", Pos(4, 6), Pos(2, 6)},
		{"NorthEast", Pos(7, 5), Pos(9, 3)},
		{"SouthWest", Pos(5, 7), Pos(3, 9)},
	}
	for _, w := range walls {
		t.Run(w.name, func(t *testing.T) {
			m := openMap(t, 13, 13)
			m.SetTile(w.wall.X, w.wall.Y, TileWall)
			got := ComputeFieldOfView(Pos(6, 6), 6, m, FOVOptions{})
			if !got.Has(w.wall) {
				t.Errorf("wall %v not visible", w.wall)
			}
			if got.Has(w.hidden) {
				t.Errorf("tile %v behind wall %v visible", w.hidden, w.wall)
			}
		})
	}
}

func TestComputeFieldOfView_KnownGridUnknownIsTransparent(t *testing.T) {
	m := openMap(t, 11, 11)
	// A solid wall ring in the ground truth that has never been seen.
	for i := 0; i < 11; i++ {
		m.SetTile(i, 3, TileWall)
	}
	m.InitKnown()

	truth := ComputeFieldOfView(Pos(5, 5), 5, m, FOVOptions{})
	if truth.Has(Pos(5, 1)) {
		t.Fatal("ground truth: tile behind wall should be hidden")
	}

	optimistic := ComputeFieldOfView(Pos(5, 5), 5, m, FOVOptions{UseKnownGrid: true})
	if !optimistic.Has(Pos(5, 1)) {
		t.Error("known grid: unknown cells should not occlude")
	}

	// Once remembered, the wall blocks on the known grid too.
	m.SetKnown(5, 3, TileWall)
	remembered := ComputeFieldOfView(Pos(5, 5), 5, m, FOVOptions{UseKnownGrid: true})
	if remembered.Has(Pos(5, 1)) {
		t.Error("known grid: remembered wall should occlude")
	}
}

func TestComputeFieldOfView_Deterministic(t *testing.T) {
	m := openMap(t, 20, 20)
	for _, p := range []Position{{7, 7}, {8, 12}, {13, 9}, {4, 10}, {10, 4}} {
		m.SetTile(p.X, p.Y, TileWall)
	}
	a := ComputeFieldOfView(Pos(10, 10), 8, m, FOVOptions{})
	b := ComputeFieldOfView(Pos(10, 10), 8, m, FOVOptions{})
	if !Equal(a, b) {
		t.Errorf("two identical calls differ:\n%v\n%v", Keys(a), Keys(b))
	}
}

func TestComputeFieldOfView_LargeRadius(t *testing.T) {
	m := openMap(t, 401, 401)
	got := ComputeFieldOfView(Pos(200, 200), 200, m, FOVOptions{})
	if !got.Has(Pos(400, 200)) || !got.Has(Pos(0, 200)) {
		t.Error("large radius: axis extremes should be visible")
	}
}

func TestComputeFieldOfView_Corridor(t *testing.T) {
	// 1-tile corridor walled above and below.
	m := openMap(t, 12, 3)
	for x := 0; x < 12; x++ {
		m.SetTile(x, 0, TileWall)
		m.SetTile(x, 2, TileWall)
	}
	got := ComputeFieldOfView(Pos(0, 1), 10, m, FOVOptions{})
	for x := 0; x <= 10; x++ {
		if !got.Has(Pos(x, 1)) {
			t.Errorf("corridor tile (%d,1) should be visible", x)
		}
	}
	if got.Has(Pos(11, 1)) {
		t.Error("corridor tile (11,1) is beyond radius")
	}
}
