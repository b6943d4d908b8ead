package lighting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/cache"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// DefaultLightColor is the warm amber used when a light has no usable colour.
var DefaultLightColor = RGB{R: 255, G: 233, B: 166}

// defaultColorCacheSize bounds how many distinct colour strings a parser
// remembers.
const defaultColorCacheSize = 256

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// parsedColor is a cache entry; invalid strings are cached too.
type parsedColor struct {
	rgb RGB
	ok  bool
}

// ColorParser converts colour strings ("#rgb", "#rrggbb", "rgb(r,g,b)",
// "r,g,b") to RGB, memoizing results. A parser belongs to one scene; it is
// not safe for concurrent use.
type ColorParser struct {
	cache *cache.Cache[string, parsedColor]
}

// NewColorParser creates a parser remembering up to capacity strings.
func NewColorParser(capacity int) *ColorParser {
	if capacity <= 0 {
		capacity = defaultColorCacheSize
	}
	return &ColorParser{cache: cache.New[string, parsedColor](capacity)}
}

// Parse converts s to an RGB colour. The second result is false when s is
// not a recognised colour.
func (p *ColorParser) Parse(s string) (RGB, bool) {
	if p == nil || p.cache == nil {
		return parseColor(s)
	}
	if hit, ok := p.cache.Get(s); ok {
		return hit.rgb, hit.ok
	}
	rgb, ok := parseColor(s)
	p.cache.Put(s, parsedColor{rgb: rgb, ok: ok})
	return rgb, ok
}

// ParseOr is Parse with a fallback for unrecognised strings.
func (p *ColorParser) ParseOr(s string, fallback RGB) RGB {
	if rgb, ok := p.Parse(s); ok {
		return rgb
	}
	return fallback
}

// Cached returns how many strings the parser currently remembers.
func (p *ColorParser) Cached() int {
	if p == nil || p.cache == nil {
		return 0
	}
	return p.cache.Size()
}

func parseColor(s string) (RGB, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RGB{}, false
	}

	if inner, ok := strings.CutPrefix(s, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return RGB{}, false
		}
		return parseTriplet(inner)
	}
	if strings.Contains(s, ",") {
		return parseTriplet(s)
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return RGB{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return RGB{}, false
		}
	}
	vals := color.HexToRgb(hex)
	if len(vals) != 3 {
		return RGB{}, false
	}
	return RGB{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2])}, true
}

func parseTriplet(s string) (RGB, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var out [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, false
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, true
}
