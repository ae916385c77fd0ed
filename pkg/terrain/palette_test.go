package terrain

import (
	"image/color"
	"testing"
)

func TestDefaultPaletteDistinct(t *testing.T) {
	pal := DefaultPalette()
	seen := map[color.RGBA]byte{}
	for _, code := range []byte{CodeOpen, CodeWall, CodePath} {
		c, ok := pal.Lookup(code)
		if !ok {
			t.Fatalf("code %q missing from default palette", code)
		}
		if other, dup := seen[c]; dup {
			t.Errorf("codes %q and %q share color %v", code, other, c)
		}
		seen[c] = code
	}
	if _, dup := seen[pal.Fallback]; dup {
		t.Errorf("fallback color %v collides with a defined code", pal.Fallback)
	}
}

func TestPaletteFallback(t *testing.T) {
	pal := DefaultPalette()
	c, ok := pal.Lookup('?')
	if ok {
		t.Error("'?' should not be defined")
	}
	if c != pal.Fallback {
		t.Errorf("Lookup('?') = %v, want fallback %v", c, pal.Fallback)
	}

	// Stable across calls.
	if again, _ := pal.Lookup('?'); again != c {
		t.Errorf("fallback changed between lookups: %v vs %v", c, again)
	}
}

func TestPaletteWith(t *testing.T) {
	base := DefaultPalette()
	grass := color.RGBA{34, 139, 34, 255}
	pal := base.With('g', grass)

	if c, ok := pal.Lookup('g'); !ok || c != grass {
		t.Errorf("Lookup('g') = %v,%v, want %v,true", c, ok, grass)
	}
	if _, ok := base.Lookup('g'); ok {
		t.Error("With must not modify the original palette")
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"30,30,40", color.RGBA{30, 30, 40, 255}, false},
		{"255,0,255", color.RGBA{255, 0, 255, 255}, false},
		{"256,0,0", color.RGBA{}, true},
		{"-1,0,0", color.RGBA{}, true},
		{"blue", color.RGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRGB(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
