package devtools

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
)

// DumpOptions control the text dump.
type DumpOptions struct {
	// Color tints overlay digits with the composited light colour.
	Color bool
	// Cols and Rows clip the map sections to a viewport centred on the
	// origin. Zero means the whole map.
	Cols, Rows int
}

var headingStyle = color.Style{color.FgCyan, color.OpBold}

// dynamicGet looks up labels passed in as variables. Calling gotext.Get
// through a variable keeps vet from treating the label as a format string.
var dynamicGet = gotext.Get

// tileSymbol returns the single-character symbol for a tile with no overlay.
func (s *Scene) tileSymbol(x, y int) rune {
	if s.Map.TileAt(x, y) == world.TileWall {
		return '#'
	}
	for _, f := range s.Features {
		if fx, fy := f.FixturePosition(); int(fx) == x && int(fy) == y {
			return []rune(f.GetIcon())[0]
		}
	}
	for _, f := range s.Furniture {
		if fx, fy := f.FixturePosition(); int(fx) == x && int(fy) == y {
			return 'L'
		}
	}
	for _, it := range s.Items {
		if !it.Held && it.Pos == world.Pos(x, y) {
			return 'i'
		}
	}
	for _, m := range s.Mobs {
		if m.Pos == world.Pos(x, y) {
			return 'm'
		}
	}
	return '.'
}

// window returns the clipped rectangle to draw.
func window(m *world.MapState, origin world.Position, opts DumpOptions) (x0, y0, cols, rows int) {
	cols, rows = m.Width, m.Height
	if opts.Cols > 0 {
		cols = min(cols, opts.Cols)
	}
	if opts.Rows > 0 {
		rows = min(rows, opts.Rows)
	}
	x0 = min(max(origin.X-cols/2, 0), m.Width-cols)
	y0 = min(max(origin.Y-rows/2, 0), m.Height-rows)
	return x0, y0, cols, rows
}

func heading(w io.Writer, opts DumpOptions, label string) {
	text := fmt.Sprintf("--- %s ---", dynamicGet(label))
	if opts.Color {
		text = headingStyle.Sprint(text)
	}
	fmt.Fprintln(w, text)
}

// Dump writes a human-readable dump of one frame: metadata, the visibility
// map, the light overlay and the light and perception lists.
func Dump(w io.Writer, s *Scene, f *Frame, opts DumpOptions) error {
	if s == nil || s.Map == nil || f == nil {
		return fmt.Errorf("dump: nothing to dump")
	}
	m := s.Map
	x0, y0, cols, rows := window(m, f.Origin, opts)

	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n\n", gotext.Get("Lighting dump"))

	heading(&b, opts, "Metadata")
	fmt.Fprintf(&b, "map: %dx%d\n", m.Width, m.Height)
	fmt.Fprintf(&b, "window: %d,%d %dx%d\n", x0, y0, cols, rows)
	fmt.Fprintf(&b, "origin: %s\n", f.Origin.Key())
	fmt.Fprintf(&b, "time: %s\n", f.Now)
	fmt.Fprintf(&b, "lights_total: %d\n", len(f.Lights))
	fmt.Fprintf(&b, "lights_seen: %d\n", len(f.Vision.Lights))
	fmt.Fprintf(&b, "visible_tiles: %d\n", f.Vision.Visible.Size())
	fmt.Fprintf(&b, "extra_lit_tiles: %d\n", f.Vision.ExtraLit.Size())
	fmt.Fprintf(&b, "animated: %v\n", f.Context.NeedsAnimation())
	fmt.Fprintf(&b, "light_signature: %q\n\n", f.Vision.LightSignature)

	heading(&b, opts, "Legend")
	fmt.Fprintln(&b, gotext.Get(". = floor  # = wall  * = lit by a remote light  @ = observer  i = item  m = mob  L = lamp  T/B/F/S/E = features  (blank) = not visible"))
	fmt.Fprintln(&b)

	heading(&b, opts, "Visibility")
	for y := y0; y < y0+rows; y++ {
		for x := x0; x < x0+cols; x++ {
			p := world.Pos(x, y)
			switch {
			case p == f.Origin:
				b.WriteRune('@')
			case f.Vision.ExtraLit.Has(p) && s.tileSymbol(x, y) == '.':
				b.WriteRune('*')
			case f.Vision.Visible.Has(p):
				b.WriteRune(s.tileSymbol(x, y))
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	fmt.Fprintln(&b)

	heading(&b, opts, "Light overlay (alpha 0-9)")
	for y := y0; y < y0+rows; y++ {
		for x := x0; x < x0+cols; x++ {
			b.WriteString(overlayCell(f.OverlayAt(m, x, y), opts.Color))
		}
		b.WriteRune('\n')
	}
	fmt.Fprintln(&b)

	heading(&b, opts, "Lights")
	seen := world.NewVisibilitySet()
	for _, l := range f.Vision.Lights {
		seen.Put(l.Position())
	}
	if len(f.Lights) == 0 {
		fmt.Fprintf(&b, "  (%s)\n", gotext.Get("none"))
	}
	for _, l := range f.Lights {
		cone := "-"
		if l.IsDirectional() {
			cone = fmt.Sprintf("%.2f/%.2f", l.Cone.Angle, l.Cone.Width)
		}
		fmt.Fprintf(&b, "  id: %s kind: %s owner: %q pos: %s radius: %.2f color: %s intensity: %.2f flicker: %.2f cone: %s channel: %d seen: %v\n",
			l.ID, l.Kind, l.OwnerID, l.Position().Key(), l.Radius, l.Color.Hex(), l.Intensity, l.FlickerRate, cone, l.Channel, seen.Has(l.Position()))
	}
	fmt.Fprintln(&b)

	heading(&b, opts, "Perception")
	ids := make([]string, 0, len(f.Perception))
	for id := range f.Perception {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		p := f.Perception[id]
		if p.Blind() {
			fmt.Fprintf(&b, "  actor: %s %s\n", id, gotext.Get("blind"))
			continue
		}
		var actors []string
		for _, a := range p.VisibleActors {
			actors = append(actors, a.ID())
		}
		fmt.Fprintf(&b, "  actor: %s fov_tiles: %d sees_actors: [%s] sees_lights: %d\n",
			id, p.FOV.Size(), strings.Join(actors, ", "), len(p.VisibleLights))
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "=== %s ===\n", gotext.Get("End of dump"))

	_, err := io.WriteString(w, b.String())
	return err
}

func overlayCell(s lighting.OverlaySample, useColor bool) string {
	if s.Alpha <= 0 || s.Color == nil {
		return "."
	}
	digit := fmt.Sprintf("%d", int(math.Round(s.Alpha*9)))
	if !useColor {
		return digit
	}
	return color.RGB(s.Color.R, s.Color.G, s.Color.B).Sprint(digit)
}
