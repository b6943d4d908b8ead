package lighting

import (
	"testing"
)

func TestColorParser_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#ff8800", RGB{255, 136, 0}, true},
		{"FF8800", RGB{255, 136, 0}, true},
		{"#f80", RGB{255, 136, 0}, true},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}, true},
		{"RGB(10,20,30)", RGB{10, 20, 30}, true},
		{"1,2,3", RGB{1, 2, 3}, true},
		{"  #000000 ", RGB{0, 0, 0}, true},
		{"", RGB{}, false},
		{"#ggg", RGB{}, false},
		{"#12345", RGB{}, false},
		{"rgb(1,2)", RGB{}, false},
		{"rgb(1,2,300)", RGB{}, false},
		{"rgb(1,2,3", RGB{}, false},
		{"torchlight", RGB{}, false},
	}
	p := NewColorParser(0)
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := p.Parse(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Parse(%q) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestColorParser_ParseOrFallback(t *testing.T) {
	p := NewColorParser(8)
	if got := p.ParseOr("nonsense", DefaultLightColor); got != DefaultLightColor {
		t.Errorf("ParseOr(nonsense) = %v, want default amber", got)
	}
}

func TestColorParser_CacheIsPerInstance(t *testing.T) {
	a := NewColorParser(8)
	b := NewColorParser(8)

	a.Parse("#123456")
	a.Parse("#123456")
	a.Parse("bogus")

	if got := a.Cached(); got != 2 {
		t.Errorf("a.Cached() = %d, want 2", got)
	}
	if got := b.Cached(); got != 0 {
		t.Errorf("b.Cached() = %d, want 0 (no leak between parsers)", got)
	}
}

func TestColorParser_CacheIsBounded(t *testing.T) {
	p := NewColorParser(2)
	p.Parse("#000001")
	p.Parse("#000002")
	p.Parse("#000003")
	if got := p.Cached(); got != 2 {
		t.Errorf("Cached() = %d, want 2", got)
	}
	// Evicted entries are re-parsed correctly.
	if got, ok := p.Parse("#000001"); !ok || got != (RGB{0, 0, 1}) {
		t.Errorf("Parse after eviction = %v, %v", got, ok)
	}
}

func TestColorParser_NilParser(t *testing.T) {
	var p *ColorParser
	if got, ok := p.Parse("#010203"); !ok || got != (RGB{1, 2, 3}) {
		t.Errorf("nil parser Parse = %v, %v", got, ok)
	}
}

func TestRGB_Hex(t *testing.T) {
	if got := (RGB{255, 233, 6}).Hex(); got != "#ffe906" {
		t.Errorf("Hex() = %q, want #ffe906", got)
	}
}
