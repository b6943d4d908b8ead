// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
	"darklight/pkg/game/entities"
)

// DefaultVision is the player's sight radius on parsed maps
const DefaultVision = 4

var (
	ErrEmptyMap        = errors.New("map has no rows")
	ErrUnknownSymbol   = errors.New("unknown map symbol")
	ErrMultiplePlayers = errors.New("more than one player spawn")
)

// Scene is a developer map with everything standing on it.
type Scene struct {
	Map       *world.MapState
	Player    *entities.Player
	Mobs      []*entities.Creature
	Items     []*entities.Item
	Features  []*entities.Feature
	Furniture []*entities.Furniture
}

// World returns the scene as the context the lighting engine reads.
func (s *Scene) World() lighting.WorldContext {
	w := lighting.WorldContext{
		Map:      s.Map,
		Entities: entities.FloorItems(s.Items),
	}
	if s.Player != nil {
		w.Player = s.Player
	}
	for _, m := range s.Mobs {
		w.Mobs = append(w.Mobs, m)
	}
	return w
}

// Origin returns the player's position, or the map centre without a player.
func (s *Scene) Origin() world.Position {
	if s.Player != nil {
		return s.Player.Pos
	}
	return world.Pos(s.Map.Width/2, s.Map.Height/2)
}

func (s *Scene) addFeature(f *entities.Feature) {
	s.Features = append(s.Features, f)
	s.Map.Features = append(s.Map.Features, f)
}

func (s *Scene) addFurniture(f *entities.Furniture) {
	s.Furniture = append(s.Furniture, f)
	s.Map.Furniture = append(s.Map.Furniture, f)
}

// ParseMapString parses a map from a string. See ParseMap.
func ParseMapString(src string) (*Scene, error) {
	return ParseMap(strings.NewReader(src))
}

// ParseMap reads a text map, one row per line:
//
//	#  wall             .  floor
//	?  unknown floor    X  unknown wall
//	@  player           m  wisp (glowing mob)
//	T  torch            B  brazier
//	F  glowcap          S  spotlight (facing east)
//	E  embers           L  work lamp
//	l  dropped lantern  t  dropped torch
//
// Short rows are padded with wall. A known grid is only built when the map
// marks some cell unknown; every other cell is then remembered as it is.
func ParseMap(r io.Reader) (*Scene, error) {
	var lines [][]rune
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, []rune(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	if len(lines) == 0 || width == 0 {
		return nil, ErrEmptyMap
	}

	m, err := world.NewMapState(width, len(lines))
	if err != nil {
		return nil, err
	}
	s := &Scene{Map: m}

	var unknown []world.Position
	for y, line := range lines {
		for x := 0; x < width; x++ {
			sym := '#'
			if x < len(line) {
				sym = line[x]
			}
			if err := s.place(sym, x, y, &unknown); err != nil {
				return nil, fmt.Errorf("line %d col %d: %w", y+1, x+1, err)
			}
		}
	}

	if len(unknown) > 0 {
		m.InitKnown()
		m.ForEachTile(func(x, y int, t world.Tile) {
			m.SetKnown(x, y, t)
		})
		for _, p := range unknown {
			m.SetKnown(p.X, p.Y, world.TileUnknown)
		}
	}
	return s, nil
}

func (s *Scene) place(sym rune, x, y int, unknown *[]world.Position) error {
	fx, fy := float64(x), float64(y)
	pos := world.Pos(x, y)

	switch sym {
	case '.', ' ':
	case '#':
		s.Map.SetTile(x, y, world.TileWall)
	case '?':
		*unknown = append(*unknown, pos)
	case 'X':
		s.Map.SetTile(x, y, world.TileWall)
		*unknown = append(*unknown, pos)
	case '@':
		if s.Player != nil {
			return ErrMultiplePlayers
		}
		s.Player = entities.NewPlayer("dev", pos, DefaultVision)
	case 'm':
		s.Mobs = append(s.Mobs, &entities.Creature{
			Name:        fmt.Sprintf("wisp%d", len(s.Mobs)+1),
			Pos:         pos,
			Vision:      DefaultVision,
			GlowRadius:  2,
			GlowColor:   "#9fc5e8",
			GlowFlicker: 0.5,
		})
	case 'T':
		s.addFeature(entities.NewFeature(entities.FeatureTorch, fx, fy))
	case 'B':
		s.addFeature(entities.NewFeature(entities.FeatureBrazier, fx, fy))
	case 'F':
		s.addFeature(entities.NewFeature(entities.FeatureFungus, fx, fy))
	case 'S':
		s.addFeature(entities.NewFeature(entities.FeatureSpotlight, fx, fy))
	case 'E':
		s.addFeature(entities.NewFeature(entities.FeatureEmbers, fx, fy))
	case 'L':
		tpl, _ := entities.FindTemplate("Work Lamp")
		s.addFurniture(entities.NewFurniture(tpl, fx, fy))
	case 'l':
		s.Items = append(s.Items, entities.NewLantern(fmt.Sprintf("lantern%d", len(s.Items)+1), pos))
	case 't':
		s.Items = append(s.Items, entities.NewTorch(fmt.Sprintf("torch%d", len(s.Items)+1), pos))
	default:
		return fmt.Errorf("%q: %w", sym, ErrUnknownSymbol)
	}
	return nil
}

// DevScene builds a hard-coded developer testing map: a walled hall with every
// light type placed in a row with a 3-tile margin between each, and a player
// in the top-left corner.
func DevScene() *Scene {
	const (
		width  = 40
		height = 16
		margin = 3
	)

	m, _ := world.NewMapState(width, height)
	for x := 0; x < width; x++ {
		m.SetTile(x, 0, world.TileWall)
		m.SetTile(x, height-1, world.TileWall)
	}
	for y := 0; y < height; y++ {
		m.SetTile(0, y, world.TileWall)
		m.SetTile(width-1, y, world.TileWall)
	}
	s := &Scene{Map: m}

	// Row 1: features of every type
	row, col := 3, 3
	for _, ft := range []entities.FeatureType{
		entities.FeatureTorch,
		entities.FeatureBrazier,
		entities.FeatureFungus,
		entities.FeatureSpotlight,
		entities.FeatureEmbers,
	} {
		f := entities.NewFeature(ft, float64(col), float64(row))
		if ft == entities.FeatureSpotlight {
			f.Facing = math.Pi / 2 // down the hall
		}
		s.addFeature(f)
		col += margin + 1
	}

	// Row 2: lit furniture
	row, col = row+margin+1, 3
	for _, room := range []string{"Engineering", "Server Room", "Crew Quarters"} {
		for _, tpl := range entities.GetLightFixturesForRoom(room) {
			if col >= width-1 {
				break
			}
			s.addFurniture(entities.NewFurniture(tpl, float64(col), float64(row)))
			col += margin + 1
		}
	}

	// Row 3: items on the floor and a wandering mob
	row = row + margin + 1
	s.Items = append(s.Items,
		entities.NewLantern("lantern1", world.Pos(3, row)),
		entities.NewTorch("torch1", world.Pos(7, row)),
	)
	s.Mobs = append(s.Mobs, &entities.Creature{Name: "wisp1", Pos: world.Pos(11, row), Vision: DefaultVision, GlowRadius: 2, GlowColor: "#9fc5e8"})

	// Interior wall segment to cast shadows
	for x := 16; x < 24; x++ {
		m.SetTile(x, row-2, world.TileWall)
	}

	s.Player = entities.NewPlayer("dev", world.Pos(1, 1), DefaultVision)
	return s
}
